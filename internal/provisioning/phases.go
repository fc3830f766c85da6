package provisioning

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KTH-EXPECA/expecactl/internal/config"
	"github.com/KTH-EXPECA/expecactl/internal/container"
	"github.com/KTH-EXPECA/expecactl/internal/keygen"
	"github.com/KTH-EXPECA/expecactl/internal/lease"
	"github.com/KTH-EXPECA/expecactl/internal/openstack"
	"github.com/KTH-EXPECA/expecactl/internal/util/naming"
	"github.com/KTH-EXPECA/expecactl/internal/util/retry"
)

// ValidatePhase re-checks the configuration before any remote call is
// made. Loading already validates; this catches configs assembled in
// code.
type ValidatePhase struct{}

func (p *ValidatePhase) Name() string { return "validate" }

func (p *ValidatePhase) Provision(ctx *Context) error {
	return ctx.Config.Validate()
}

// KeypairPhase makes sure the experiment's SSH keypair exists in Nova.
// Without a configured public key a fresh RSA pair is generated and the
// private half written next to the working directory.
type KeypairPhase struct{}

func (p *KeypairPhase) Name() string { return "keypair" }

func (p *KeypairPhase) Provision(ctx *Context) error {
	kp := ctx.Config.Keypair
	if kp.Name == "" {
		kp.Name = naming.Keypair(ctx.Config.Name)
	}

	var publicKey string
	if kp.PublicKeyPath != "" {
		data, err := os.ReadFile(kp.PublicKeyPath)
		if err != nil {
			return fmt.Errorf("failed to read public key: %w", err)
		}
		publicKey = string(data)
	} else {
		generated, err := keygen.GenerateRSAKeyPair(4096)
		if err != nil {
			return fmt.Errorf("failed to generate keypair: %w", err)
		}
		publicKey = string(generated.PublicKey)

		privPath := filepath.Join(".", kp.Name+".pem")
		if err := os.WriteFile(privPath, generated.PrivateKey, 0o600); err != nil {
			return fmt.Errorf("failed to write private key: %w", err)
		}
		ctx.Observer.Printf("wrote private key to %s", privPath)
	}

	if err := ctx.Client.EnsureKeypair(ctx, kp.Name, publicKey); err != nil {
		return err
	}

	ctx.State.KeypairName = kp.Name
	ctx.Observer.Event(Event{Type: EventResourceExists, Phase: p.Name(), Resource: kp.Name, Message: "keypair ready"})
	return nil
}

// LeasePhase reserves every item of the experiment: devices first, then
// networks, strictly one at a time. For network items the Neutron
// network Blazar creates on lease start is resolved into the state so
// containers can attach to it.
type LeasePhase struct{}

func (p *LeasePhase) Name() string { return "leases" }

func (p *LeasePhase) Provision(ctx *Context) error {
	ordered := make([]config.Item, 0, len(ctx.Config.Items))
	for _, item := range ctx.Config.Items {
		if item.Type == config.ItemTypeDevice {
			ordered = append(ordered, item)
		}
	}
	for _, item := range ctx.Config.Items {
		if item.Type == config.ItemTypeNetwork {
			ordered = append(ordered, item)
		}
	}

	for _, item := range ordered {
		l, err := ctx.Leases.Reserve(ctx, item)
		if err != nil {
			ctx.Observer.Event(Event{Type: EventResourceFailed, Phase: p.Name(), Resource: item.Name, Message: err.Error()})
			return err
		}

		ctx.State.LeaseIDs[item.Name] = l.ID
		switch item.Type {
		case config.ItemTypeDevice:
			ctx.State.ReservationIDs[item.Name] = lease.ReservationID(l, openstack.ResourceDevice)
		case config.ItemTypeNetwork:
			ctx.State.ReservationIDs[item.Name] = lease.ReservationID(l, openstack.ResourceNetwork)
			if err := p.resolveNetwork(ctx, item); err != nil {
				return err
			}
		}

		ctx.Observer.Event(Event{Type: EventResourceCreated, Phase: p.Name(), Resource: item.Name, Message: "lease " + l.ID})
	}
	return nil
}

// resolveNetwork looks up the Neutron id of a freshly created lease
// network. Neutron can lag the lease by a few seconds, so the lookup is
// retried.
func (p *LeasePhase) resolveNetwork(ctx *Context, item config.Item) error {
	netName := naming.Network(item.Name)
	return retry.Do(ctx, func() error {
		id, err := ctx.Client.GetNetworkID(ctx, netName)
		if err != nil {
			return err
		}
		ctx.State.NetworkIDs[item.Name] = id
		return nil
	},
		retry.WithMaxRetries(ctx.Timeouts.CreateRetries),
		retry.WithDelay(ctx.Timeouts.RetryDelay))
}

// ContainerPhase starts the experiment's containers on their reserved
// devices.
type ContainerPhase struct{}

func (p *ContainerPhase) Name() string { return "containers" }

func (p *ContainerPhase) Provision(ctx *Context) error {
	for _, ct := range ctx.Config.Containers {
		opts := container.RunOpts{
			Name:        naming.Container(ctx.Config.Name, ct.Name),
			Image:       ct.Image,
			Command:     ct.Command,
			Environment: ct.Environment,
			Ports:       ct.Ports,
		}

		if ct.Device != "" {
			resID, ok := ctx.State.ReservationIDs[ct.Device]
			if !ok || resID == "" {
				return fmt.Errorf("container %s: no reservation for device %q", ct.Name, ct.Device)
			}
			opts.ReservationID = resID
		}

		for _, netRef := range ct.Networks {
			id, ok := ctx.State.NetworkIDs[netRef]
			if !ok {
				// Not an experiment network; treat as a pre-existing
				// Neutron network name.
				var err error
				id, err = ctx.Client.GetNetworkID(ctx, netRef)
				if err != nil {
					return fmt.Errorf("container %s: %w", ct.Name, err)
				}
			}
			opts.NetworkIDs = append(opts.NetworkIDs, id)
		}

		c, err := ctx.Containers.Run(ctx, opts)
		if err != nil {
			ctx.Observer.Event(Event{Type: EventResourceFailed, Phase: p.Name(), Resource: ct.Name, Message: err.Error()})
			return err
		}

		ctx.State.ContainerUUIDs[ct.Name] = c.UUID
		ctx.Observer.Event(Event{Type: EventResourceCreated, Phase: p.Name(), Resource: ct.Name, Message: "container " + c.UUID})
	}
	return nil
}
