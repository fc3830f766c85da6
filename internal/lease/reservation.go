// Package lease builds Blazar reservation payloads and drives the lease
// lifecycle: create, wait until active, remove, with bounded retries.
package lease

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KTH-EXPECA/expecactl/internal/openstack"
)

// BlazarTimeFormat is the timestamp layout Blazar expects in lease
// requests.
const BlazarTimeFormat = "2006-01-02 15:04"

// DefaultNodeType is requested when the caller does not filter node
// reservations.
const DefaultNodeType = "compute_haswell"

// DefaultPhysicalNetwork is the provider network testbed VLANs hang off.
const DefaultPhysicalNetwork = "physnet1"

// NodeTypes are the bare-metal node classes the testbed advertises.
// Reservations for unknown types are allowed through with a warning so
// the tooling does not lag behind hardware additions.
var NodeTypes = map[string]struct{}{
	"compute_haswell":    {},
	"compute_skylake":    {},
	"compute_haswell_ib": {},
	"storage":            {},
	"storage_hierarchy":  {},
	"gpu_p100":           {},
	"gpu_p100_nvlink":    {},
	"gpu_k80":            {},
	"gpu_m40":            {},
	"fpga":               {},
	"lowpower_xeon":      {},
	"atom":               {},
	"arm64":              {},
}

// resourceFilter encodes a Blazar resource property filter expression.
// Blazar compares the JSON text byte for byte in places, so the encoding
// must stay compact (no spaces); encoding/json does that by default.
func resourceFilter(op, key, value string) string {
	b, _ := json.Marshal([]string{op, key, value})
	return string(b)
}

// AddNodeReservation appends a bare-metal node reservation filtered by
// node type. The list is extended in place.
func AddNodeReservation(list *[]openstack.Reservation, count int, nodeType string) {
	if nodeType == "" {
		nodeType = DefaultNodeType
	}
	if _, known := NodeTypes[nodeType]; !known {
		logrus.Warnf("unknown node_type %q, requesting it anyway", nodeType)
	}

	*list = append(*list, openstack.Reservation{
		ResourceType:         openstack.ResourcePhysicalHost,
		ResourceProperties:   resourceFilter("==", "$node_type", nodeType),
		HypervisorProperties: "",
		Min:                  strconv.Itoa(count),
		Max:                  strconv.Itoa(count),
	})
}

// AddDeviceReservation appends a reservation for a single named radio
// device (ExPECA hardware: Advantech routers, SDRs, workers).
func AddDeviceReservation(list *[]openstack.Reservation, machineName string) {
	*list = append(*list, openstack.Reservation{
		ResourceType:       openstack.ResourceDevice,
		ResourceProperties: resourceFilter("==", "$machine_name", machineName),
		Min:                "1",
		Max:                "1",
	})
}

// NetworkReservationOpts are the optional knobs of a network reservation.
type NetworkReservationOpts struct {
	// OFControllerIP/Port hand the network to an external OpenFlow
	// controller when both are set.
	OFControllerIP   string
	OFControllerPort int
	// VSwitchName names the virtual forwarding context on the switch.
	VSwitchName string
	// PhysicalNetwork defaults to physnet1.
	PhysicalNetwork string
}

// AddNetworkReservation appends a reservation that creates an isolated
// network when the lease starts.
func AddNetworkReservation(list *[]openstack.Reservation, networkName string, opts NetworkReservationOpts) {
	var descParts []string
	if opts.OFControllerIP != "" && opts.OFControllerPort != 0 {
		descParts = append(descParts, fmt.Sprintf("OFController=%s:%d", opts.OFControllerIP, opts.OFControllerPort))
	}
	if opts.VSwitchName != "" {
		descParts = append(descParts, fmt.Sprintf("VSwitchName=%s", opts.VSwitchName))
	}

	physical := opts.PhysicalNetwork
	if physical == "" {
		physical = DefaultPhysicalNetwork
	}

	*list = append(*list, openstack.Reservation{
		ResourceType:       openstack.ResourceNetwork,
		NetworkName:        networkName,
		NetworkDescription: strings.Join(descParts, ","),
		ResourceProperties: resourceFilter("==", "$physical_network", physical),
		NetworkProperties:  "",
	})
}

// AddSegmentReservation appends a network reservation bound to a
// specific VLAN segment. The segment id must be a string on the wire.
func AddSegmentReservation(list *[]openstack.Reservation, networkName, segmentID string) {
	*list = append(*list, openstack.Reservation{
		ResourceType:       openstack.ResourceNetwork,
		NetworkName:        networkName,
		NetworkDescription: "",
		ResourceProperties: resourceFilter("==", "$vlan_id", segmentID),
		NetworkProperties:  "",
	})
}

// AddFloatingIPReservation appends a reservation for public floating IPs
// drawn from the given external network.
func AddFloatingIPReservation(list *[]openstack.Reservation, count int, networkID string) {
	*list = append(*list, openstack.Reservation{
		ResourceType: openstack.ResourceFloatingIP,
		NetworkID:    networkID,
		Amount:       count,
	})
}

// Duration computes start and end stamps for a lease of the given
// length. The start is pushed one minute into the future so Blazar's
// rounding to whole minutes cannot place the lease in the past.
func Duration(days, hours int) (start, end string) {
	now := time.Now().UTC()
	start = now.Add(time.Minute).Format(BlazarTimeFormat)
	end = now.Add(time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour).Format(BlazarTimeFormat)
	return start, end
}

// ReservationID returns the id of the first reservation of the given
// resource type in the lease, or "".
func ReservationID(l *openstack.Lease, resourceType string) string {
	if l == nil {
		return ""
	}
	for _, r := range l.Reservations {
		if r.ResourceType == resourceType {
			return r.ID
		}
	}
	return ""
}
