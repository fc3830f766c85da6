package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KTH-EXPECA/expecactl/internal/container"
	"github.com/KTH-EXPECA/expecactl/internal/lease"
	"github.com/KTH-EXPECA/expecactl/internal/openstack"
	"github.com/KTH-EXPECA/expecactl/internal/testbed"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	badStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

func renderStatus(status string) string {
	switch status {
	case openstack.LeaseStatusActive, openstack.ContainerStatusRunning:
		return okStyle.Render(status)
	case openstack.LeaseStatusError, openstack.ContainerStatusError:
		return badStyle.Render(status)
	default:
		return dimStyle.Render(status)
	}
}

// renderLeaseTable produces the lease listing.
func renderLeaseTable(briefs []lease.Brief) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("  Leases"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 78)))
	b.WriteString("\n")

	if len(briefs) == 0 {
		b.WriteString(dimStyle.Render("  no leases"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-22s %-36s %-10s %s", "Name", "ID", "Status", "Ends")))
	b.WriteString("\n")
	for _, br := range briefs {
		b.WriteString(fmt.Sprintf("  %-22s %-36s ", br.Name, br.ID))
		b.WriteString(renderStatus(br.Status))
		b.WriteString(strings.Repeat(" ", max(1, 11-len(br.Status))))
		b.WriteString(br.EndDate)
		b.WriteString("\n")
	}
	return b.String()
}

// renderLeaseDetail produces the single-lease view with reservations.
func renderLeaseDetail(l *openstack.Lease) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("  " + l.Name))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 60)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  ID:      %s\n", l.ID))
	b.WriteString("  Status:  ")
	b.WriteString(renderStatus(l.Status))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Start:   %s\n", l.StartDate))
	b.WriteString(fmt.Sprintf("  End:     %s\n", l.EndDate))

	if len(l.Reservations) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-38s %s", "Reservation", "Resource")))
		b.WriteString("\n")
		for _, r := range l.Reservations {
			b.WriteString(fmt.Sprintf("  %-38s %s\n", r.ID, r.ResourceType))
		}
	}
	return b.String()
}

// renderContainerTable produces the container listing.
func renderContainerTable(briefs []container.Brief) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("  Containers"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 78)))
	b.WriteString("\n")

	if len(briefs) == 0 {
		b.WriteString(dimStyle.Render("  no containers"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-22s %-36s %-9s %s", "Name", "UUID", "Status", "Addresses")))
	b.WriteString("\n")
	for _, br := range briefs {
		b.WriteString(fmt.Sprintf("  %-22s %-36s ", br.Name, br.UUID))
		b.WriteString(renderStatus(br.Status))
		b.WriteString(strings.Repeat(" ", max(1, 10-len(br.Status))))
		b.WriteString(strings.Join(br.Addresses, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

// renderSnapshot produces the testbed status view: reservable floating
// IPs and the radio wiring map.
func renderSnapshot(snap *testbed.Snapshot) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("  Available floating IPs"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")
	if len(snap.AvailableIPs) == 0 {
		b.WriteString(badStyle.Render("  none free"))
		b.WriteString("\n")
	} else {
		for _, ip := range snap.AvailableIPs {
			b.WriteString("  " + ip + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Radio map"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")
	if len(snap.Radios) == 0 {
		b.WriteString(dimStyle.Render("  no radios published"))
		b.WriteString("\n")
		return b.String()
	}

	names := make([]string, 0, len(snap.Radios))
	for name := range snap.Radios {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-16s %-12s %s", "Radio", "Interface", "Segment")))
	b.WriteString("\n")
	for _, name := range names {
		r := snap.Radios[name]
		b.WriteString(fmt.Sprintf("  %-16s %-12s %s\n", name, r.Interface, r.SegmentID))
	}
	return b.String()
}
