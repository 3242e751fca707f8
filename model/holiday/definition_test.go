package holiday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polytechnice-si/5A-BPM-Demo/model"
)

func TestDefinition(t *testing.T) {
	definition, err := Definition(&model.DelegateFunc{Label: "sendRejectionMail"})
	require.NoError(t, err)
	assert.Equal(t, Key, definition.Key)
	assert.Equal(t, NodeStart, definition.StartNode)
	assert.Equal(t, []string{NodeStart, NodeApproval, NodeDecision, NodeApproveEnd, NodeRejectionMail, NodeRejectEnd}, definition.NodeIDs())

	node, ok := definition.Node(NodeApproval)
	require.True(t, ok)
	approval, ok := node.(*model.UserTask)
	require.True(t, ok)
	assert.Equal(t, GroupManagers, approval.CandidateGroup)

	node, _ = definition.Node(NodeDecision)
	gateway := node.(*model.Gateway)
	assert.Equal(t, VarApproved, gateway.Variable)
	assert.Equal(t, NodeApproveEnd, gateway.WhenTrue)
	assert.Equal(t, NodeRejectionMail, gateway.WhenFalse)

	_, err = Definition(nil)
	assert.ErrorIs(t, err, model.ErrInvalidDefinition)
}

func TestVariables(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"employee": "Alice", "nrOfHolidays": 5, "description": "trip"}, Variables("Alice", 5, "trip"))
}
