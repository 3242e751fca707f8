// Package holiday declares the holidayRequest process: a manager approves or
// rejects an employee's request, rejected requests trigger a notification.
package holiday

import "github.com/polytechnice-si/5A-BPM-Demo/model"

const Key = "holidayRequest"

// Node ids
const (
	NodeStart         = "startEvent"
	NodeApproval      = "managerApproval"
	NodeDecision      = "decision"
	NodeApproveEnd    = "approveEnd"
	NodeRejectionMail = "sendRejectionMail"
	NodeRejectEnd     = "rejectEnd"
)

// Variables and groups
const (
	GroupManagers   = "managers"
	VarEmployee     = "employee"
	VarNrOfHolidays = "nrOfHolidays"
	VarDescription  = "description"
	VarApproved     = "approved"
)

// Definition builds the holidayRequest process bound to the supplied
// rejection notification delegate.
func Definition(rejectionMail model.Delegate) (*model.Definition, error) {
	return model.NewDefinition(Key).
		Named("Holiday request").
		Start(NodeStart, NodeApproval).
		UserTask(NodeApproval, "Approve or reject request", GroupManagers, NodeDecision).
		Gateway(NodeDecision, VarApproved, NodeApproveEnd, NodeRejectionMail).
		End(NodeApproveEnd).
		ServiceTask(NodeRejectionMail, rejectionMail, NodeRejectEnd).
		End(NodeRejectEnd).
		Build()
}

// Variables returns the start variables of a request.
func Variables(employee string, nrOfHolidays int, description string) map[string]interface{} {
	return map[string]interface{}{
		VarEmployee:     employee,
		VarNrOfHolidays: nrOfHolidays,
		VarDescription:  description,
	}
}
