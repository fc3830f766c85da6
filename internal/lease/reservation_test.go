package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KTH-EXPECA/expecactl/internal/openstack"
)

func TestAddNodeReservation(t *testing.T) {
	t.Parallel()
	var list []openstack.Reservation
	AddNodeReservation(&list, 2, "gpu_k80")

	require.Len(t, list, 1)
	r := list[0]
	require.Equal(t, openstack.ResourcePhysicalHost, r.ResourceType)
	require.Equal(t, `["==","$node_type","gpu_k80"]`, r.ResourceProperties)
	require.Equal(t, "2", r.Min)
	require.Equal(t, "2", r.Max)
}

func TestAddNodeReservation_DefaultType(t *testing.T) {
	t.Parallel()
	var list []openstack.Reservation
	AddNodeReservation(&list, 1, "")
	require.Contains(t, list[0].ResourceProperties, DefaultNodeType)
}

func TestAddDeviceReservation(t *testing.T) {
	t.Parallel()
	var list []openstack.Reservation
	AddDeviceReservation(&list, "adv-01")

	require.Len(t, list, 1)
	r := list[0]
	require.Equal(t, openstack.ResourceDevice, r.ResourceType)
	require.Equal(t, `["==","$machine_name","adv-01"]`, r.ResourceProperties)
	require.Equal(t, "1", r.Min)
	require.Equal(t, "1", r.Max)
}

func TestAddNetworkReservation(t *testing.T) {
	t.Parallel()
	var list []openstack.Reservation
	AddNetworkReservation(&list, "exp-net", NetworkReservationOpts{
		OFControllerIP:   "10.0.0.5",
		OFControllerPort: 6653,
		VSwitchName:      "vfc1",
	})

	require.Len(t, list, 1)
	r := list[0]
	require.Equal(t, openstack.ResourceNetwork, r.ResourceType)
	require.Equal(t, "exp-net", r.NetworkName)
	require.Equal(t, "OFController=10.0.0.5:6653,VSwitchName=vfc1", r.NetworkDescription)
	require.Equal(t, `["==","$physical_network","physnet1"]`, r.ResourceProperties)
}

func TestAddNetworkReservation_NoOptions(t *testing.T) {
	t.Parallel()
	var list []openstack.Reservation
	AddNetworkReservation(&list, "plain-net", NetworkReservationOpts{})
	require.Empty(t, list[0].NetworkDescription)
}

func TestAddSegmentReservation(t *testing.T) {
	t.Parallel()
	var list []openstack.Reservation
	AddSegmentReservation(&list, "sdr-net", "137")

	r := list[0]
	// The segment id must stay a string and the JSON must stay compact.
	require.Equal(t, `["==","$vlan_id","137"]`, r.ResourceProperties)
	require.Equal(t, "sdr-net", r.NetworkName)
}

func TestAddFloatingIPReservation(t *testing.T) {
	t.Parallel()
	var list []openstack.Reservation
	AddFloatingIPReservation(&list, 3, "pub-net-id")

	r := list[0]
	require.Equal(t, openstack.ResourceFloatingIP, r.ResourceType)
	require.Equal(t, "pub-net-id", r.NetworkID)
	require.Equal(t, 3, r.Amount)
}

func TestDuration(t *testing.T) {
	t.Parallel()
	start, end := Duration(1, 12)

	st, err := time.Parse(BlazarTimeFormat, start)
	require.NoError(t, err)
	en, err := time.Parse(BlazarTimeFormat, end)
	require.NoError(t, err)

	// 1 day + 12 hours, minus the one-minute start offset.
	require.InDelta(t, (36*time.Hour - time.Minute).Minutes(), en.Sub(st).Minutes(), 1.5)
	require.True(t, en.After(st))
}

func TestReservationID(t *testing.T) {
	t.Parallel()
	l := &openstack.Lease{Reservations: []openstack.Reservation{
		{ID: "r1", ResourceType: openstack.ResourceNetwork},
		{ID: "r2", ResourceType: openstack.ResourceDevice},
	}}

	require.Equal(t, "r2", ReservationID(l, openstack.ResourceDevice))
	require.Equal(t, "", ReservationID(l, openstack.ResourcePhysicalHost))
	require.Equal(t, "", ReservationID(nil, openstack.ResourceDevice))
}
