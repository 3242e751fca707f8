// Package model contains the immutable process definition graph executed by
// the engine.
//
// A Definition is an ordered set of typed nodes (Start, UserTask, Gateway,
// ServiceTask, End) connected by single outgoing edges, except for gateways
// which branch on a named boolean variable. Definitions are assembled in code
// with NewDefinition and validated before registration:
//
//	def, err := model.NewDefinition("holidayRequest").
//		Start("start", "approveTask").
//		UserTask("approveTask", "Approve or reject request", "managers", "decision").
//		Gateway("decision", "approved", "end", "sendRejection").
//		ServiceTask("sendRejection", notifier, "end").
//		End("end").
//		Build()
package model
