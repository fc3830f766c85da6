package provisioning

import (
	"strings"

	"github.com/KTH-EXPECA/expecactl/internal/util/naming"
)

// Teardown resolves resources by the experiment's naming convention so
// it works from configuration alone, without provisioning state: destroy
// is routinely run from a different invocation than apply.

// ContainerTeardownPhase removes the experiment's containers. Absent
// containers are fine; other failures are collected but do not stop the
// remaining removals.
type ContainerTeardownPhase struct{}

func (p *ContainerTeardownPhase) Name() string { return "containers" }

func (p *ContainerTeardownPhase) Provision(ctx *Context) error {
	containers, err := ctx.Containers.List(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string]string, len(containers))
	for _, c := range containers {
		byName[c.Name] = c.UUID
	}

	for _, ct := range ctx.Config.Containers {
		name := naming.Container(ctx.Config.Name, ct.Name)
		uuid, found := byName[name]
		if !found {
			ctx.Observer.Event(Event{Type: EventResourceDeleted, Phase: p.Name(), Resource: name, Message: "not present"})
			continue
		}
		if err := ctx.Containers.Remove(ctx, uuid); err != nil {
			// Leases go next regardless; deleting a device lease kills
			// whatever still runs on it.
			ctx.Observer.Event(Event{Type: EventResourceFailed, Phase: p.Name(), Resource: name, Message: err.Error()})
			continue
		}
		ctx.Observer.Event(Event{Type: EventResourceDeleted, Phase: p.Name(), Resource: name, Message: "removed"})
	}
	return nil
}

// LeaseTeardownPhase removes the experiment's leases, one at a time.
type LeaseTeardownPhase struct{}

func (p *LeaseTeardownPhase) Name() string { return "leases" }

func (p *LeaseTeardownPhase) Provision(ctx *Context) error {
	leases, err := ctx.Leases.List(ctx)
	if err != nil {
		return err
	}

	var failures []string
	for _, item := range ctx.Config.Items {
		leaseName := naming.Lease(item.Name)
		removed := false
		for _, l := range leases {
			if l.Name != leaseName {
				continue
			}
			if err := ctx.Leases.Remove(ctx, l.ID, l.Name, true); err != nil {
				ctx.Observer.Event(Event{Type: EventResourceFailed, Phase: p.Name(), Resource: leaseName, Message: err.Error()})
				failures = append(failures, leaseName)
			} else {
				ctx.Observer.Event(Event{Type: EventResourceDeleted, Phase: p.Name(), Resource: leaseName, Message: "removed"})
			}
			removed = true
		}
		if !removed {
			ctx.Observer.Event(Event{Type: EventResourceDeleted, Phase: p.Name(), Resource: leaseName, Message: "not present"})
		}
	}

	if len(failures) > 0 {
		return &TeardownError{Resources: failures}
	}
	return nil
}

// KeypairTeardownPhase deletes the experiment's keypair from Nova.
type KeypairTeardownPhase struct{}

func (p *KeypairTeardownPhase) Name() string { return "keypair" }

func (p *KeypairTeardownPhase) Provision(ctx *Context) error {
	name := ctx.Config.Keypair.Name
	if name == "" {
		name = naming.Keypair(ctx.Config.Name)
	}
	if err := ctx.Client.DeleteKeypair(ctx, name); err != nil {
		return err
	}
	ctx.Observer.Event(Event{Type: EventResourceDeleted, Phase: p.Name(), Resource: name, Message: "removed"})
	return nil
}

// TeardownError reports the resources a teardown phase could not remove.
type TeardownError struct {
	Resources []string
}

func (e *TeardownError) Error() string {
	return "failed to remove: " + strings.Join(e.Resources, ", ")
}
