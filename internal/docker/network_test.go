package docker

import (
	"encoding/json"
	"testing"

	"github.com/docker/docker/api/types/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/screensplit/internal/layout"
	"github.com/shinji-kodama/screensplit/internal/model"
)

// TestNetworkName verifies zero padding by server count.
func TestNetworkName(t *testing.T) {
	assert.Equal(t, "screensplit-server-0", NetworkName(0, 1))
	assert.Equal(t, "screensplit-server-07", NetworkName(7, 16))
	assert.Equal(t, "screensplit-server-015", NetworkName(15, 128))
}

// TestNetworkRequests verifies one IPv6 network per server with the
// server's subnet and labels.
func TestNetworkRequests(t *testing.T) {
	plan, err := layout.NewPlan(model.DefaultLayout())
	require.NoError(t, err)

	reqs, err := NetworkRequests(plan)
	require.NoError(t, err)
	require.Len(t, reqs, 16)

	last := reqs[15]
	assert.Equal(t, "screensplit-server-15", last.Name)
	assert.Equal(t, NetworkDriver, last.Driver)
	require.NotNil(t, last.EnableIPv6)
	assert.True(t, *last.EnableIPv6)
	require.NotNil(t, last.IPAM)
	require.Len(t, last.IPAM.Config, 1)
	assert.Equal(t, "2000:42:0:0:f000::/68", last.IPAM.Config[0].Subnet)

	a, err := ParseLabels(last.Labels)
	require.NoError(t, err)
	assert.Equal(t, plan.Assignments[15], *a)
}

// TestNetworkRequest_JSON verifies that the request survives the Engine
// API's JSON encoding.
func TestNetworkRequest_JSON(t *testing.T) {
	plan, err := layout.NewPlan(model.DefaultLayout())
	require.NoError(t, err)

	data, err := json.Marshal(NetworkRequest(plan.Layout, plan.Assignments[0]))
	require.NoError(t, err)

	var decoded network.CreateRequest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "screensplit-server-00", decoded.Name)
	require.NotNil(t, decoded.IPAM)
	assert.Equal(t, "2000:42::/68", decoded.IPAM.Config[0].Subnet)
	assert.Equal(t, "0", decoded.Labels[LabelServerIndex])
}
