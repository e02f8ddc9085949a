package docker

import (
	"fmt"
	"strconv"

	"github.com/docker/docker/api/types/network"

	"github.com/shinji-kodama/screensplit/internal/layout"
	"github.com/shinji-kodama/screensplit/internal/model"
)

// NetworkDriver is the driver used for the generated networks. Each server
// subnet becomes its own bridge network.
const NetworkDriver = "bridge"

// NetworkName returns the name of the network for server index, zero-padded
// so that names sort in index order ("screensplit-server-07").
func NetworkName(index, servers int) string {
	digits := len(strconv.Itoa(servers - 1))
	return fmt.Sprintf("%s-server-%0*d", ManagedByValue, digits, index)
}

// NetworkRequest builds the Engine API body that creates the IPv6 network
// for one assignment.
func NetworkRequest(l model.Layout, a model.Assignment) network.CreateRequest {
	enableIPv6 := true
	return network.CreateRequest{
		Name: NetworkName(a.Index, l.Servers),
		CreateOptions: network.CreateOptions{
			Driver:     NetworkDriver,
			EnableIPv6: &enableIPv6,
			IPAM: &network.IPAM{
				Driver: "default",
				Config: []network.IPAMConfig{
					{Subnet: a.Subnet.String()},
				},
			},
			Labels: BuildLabels(l, a),
		},
	}
}

// NetworkRequests returns one request per server in index order. Every
// request's labels are checked against its assignment with VerifyLabels.
func NetworkRequests(p *layout.Plan) ([]network.CreateRequest, error) {
	reqs := make([]network.CreateRequest, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		req := NetworkRequest(p.Layout, a)
		if err := VerifyLabels(req.Labels, a); err != nil {
			return nil, fmt.Errorf("network %s: %w", req.Name, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
