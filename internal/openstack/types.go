package openstack

// Resource types understood by the Blazar reservation service on the
// testbed.
const (
	ResourcePhysicalHost = "physical:host"
	ResourceNetwork      = "network"
	ResourceFloatingIP   = "virtual:floatingip"
	ResourceDevice       = "device"
)

// Lease statuses reported by Blazar.
const (
	LeaseStatusPending  = "PENDING"
	LeaseStatusStarting = "STARTING"
	LeaseStatusActive   = "ACTIVE"
	LeaseStatusDeleting = "DELETING"
	LeaseStatusError    = "ERROR"

	// LeaseStatusGone is the local marker for a lease that no longer
	// shows up in listings. Blazar never reports it on the wire.
	LeaseStatusGone = ""
)

// Container statuses reported by the container service.
const (
	ContainerStatusCreating = "Creating"
	ContainerStatusCreated  = "Created"
	ContainerStatusRunning  = "Running"
	ContainerStatusStopped  = "Stopped"
	ContainerStatusDeleting = "Deleting"
	ContainerStatusError    = "Error"

	// ContainerStatusGone mirrors LeaseStatusGone for containers.
	ContainerStatusGone = ""
)

// Reservation is one sub-request of a lease. The same shape is used in
// create requests and in lease responses; Blazar expects min/max as
// strings.
type Reservation struct {
	ID                   string `json:"id,omitempty"`
	ResourceType         string `json:"resource_type"`
	ResourceProperties   string `json:"resource_properties,omitempty"`
	HypervisorProperties string `json:"hypervisor_properties,omitempty"`
	Min                  string `json:"min,omitempty"`
	Max                  string `json:"max,omitempty"`

	// Network reservations.
	NetworkName        string `json:"network_name,omitempty"`
	NetworkDescription string `json:"network_description,omitempty"`
	NetworkProperties  string `json:"network_properties,omitempty"`

	// Floating IP reservations.
	NetworkID string `json:"network_id,omitempty"`
	Amount    int    `json:"amount,omitempty"`
}

// Lease is a Blazar lease as returned by the API.
type Lease struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Status       string           `json:"status"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	Reservations []Reservation    `json:"reservations"`
	Events       []map[string]any `json:"events"`
}

// LeaseCreateOpts holds the request body for lease creation. Events must
// be present (an empty list) or Blazar rejects the request.
type LeaseCreateOpts struct {
	Name         string           `json:"name"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	Reservations []Reservation    `json:"reservations"`
	Events       []map[string]any `json:"events"`
}

// LeaseUpdateOpts holds the request body for lease updates (rename,
// prolong).
type LeaseUpdateOpts struct {
	Name       string `json:"name,omitempty"`
	ProlongFor string `json:"prolong_for,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

// Network is the subset of a Neutron network the testbed tooling needs.
type Network struct {
	ID        string
	Name      string
	SegmentID string
	Status    string
}

// FloatingIP is a Neutron floating IP.
type FloatingIP struct {
	ID      string
	Address string
	Status  string
}

// ContainerCreateOpts holds the request body for container creation on
// the container service.
type ContainerCreateOpts struct {
	Name             string            `json:"name"`
	Image            string            `json:"image"`
	Command          []string          `json:"command,omitempty"`
	Environment      map[string]string `json:"environment,omitempty"`
	Labels           map[string]string `json:"labels,omitempty"`
	Nets             []ContainerNet    `json:"nets,omitempty"`
	ExposedPorts     map[string]any    `json:"exposed_ports,omitempty"`
	Hints            map[string]any    `json:"hints,omitempty"`
	Host             string            `json:"host,omitempty"`
	AvailabilityZone string            `json:"availability_zone,omitempty"`
	Interactive      bool              `json:"interactive"`
	AutoRemove       bool              `json:"auto_remove,omitempty"`
}

// ContainerNet attaches a container to a network, a port, or a fixed IP.
type ContainerNet struct {
	Network string `json:"network,omitempty"`
	Port    string `json:"port,omitempty"`
	FixedIP string `json:"v4-fixed-ip,omitempty"`
}

// Container is a container record as returned by the container service.
type Container struct {
	UUID      string                      `json:"uuid"`
	Name      string                      `json:"name"`
	Status    string                      `json:"status"`
	Image     string                      `json:"image"`
	Host      string                      `json:"host"`
	Addresses map[string][]map[string]any `json:"addresses"`
}
