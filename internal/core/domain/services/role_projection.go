package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"
)

// Role identifies the acting party's role in the delivery marketplace.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin is the dispatcher/administrator: full visibility, arbitration rights.
	RoleAdmin

	// RoleOperator is back-office staff: full visibility, no arbitration.
	RoleOperator

	// RoleCourier sees claimable pending orders plus their own assignments.
	RoleCourier

	// RoleClient sees only the orders they created.
	RoleClient
)

// RoleFromString parses a role name (admin, operator, courier, client).
func RoleFromString(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "admin":
		return RoleAdmin, nil
	case "operator":
		return RoleOperator, nil
	case "courier":
		return RoleCourier, nil
	case "client":
		return RoleClient, nil
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleOperator:
		return "operator"
	case RoleCourier:
		return "courier"
	case RoleClient:
		return "client"
	default:
		return "unknown"
	}
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if r < RoleAdmin || r > RoleClient {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Tab identifies one of the three presentation buckets.
type Tab int

const (
	// TabUnknown represents an invalid or undefined tab.
	TabUnknown Tab = iota

	// TabNew holds claimable orders ("Nouvelles").
	TabNew

	// TabActive holds orders in progress ("En cours").
	TabActive

	// TabDone holds terminated orders ("Terminées").
	TabDone
)

// TabFromString parses a tab name (new, active, done).
func TabFromString(s string) (Tab, error) {
	switch strings.ToLower(s) {
	case "new":
		return TabNew, nil
	case "active":
		return TabActive, nil
	case "done":
		return TabDone, nil
	}
	return TabUnknown, errs.NewValueIsInvalidErrorWithCause("tab",
		fmt.Errorf("%q is not a valid tab", s))
}

// Label returns the user-facing French tab label.
func (t Tab) Label() string {
	switch t {
	case TabNew:
		return "Nouvelles"
	case TabActive:
		return "En cours"
	case TabDone:
		return "Terminées"
	default:
		return ""
	}
}

// Validate checks if the Tab value is valid.
func (t Tab) Validate() error {
	if t < TabNew || t > TabDone {
		return errs.NewValueIsInvalidErrorWithCause("tab",
			fmt.Errorf("%d is not a valid tab", t))
	}
	return nil
}

// ViewRow is one formatted row of a role-scoped order listing. It is a
// derived, read-only rendering of an order; building it never mutates the
// canonical aggregate.
type ViewRow struct {
	OrderID     kernel.UUID
	Reference   string
	Status      order.Status
	Route       string
	Weight      int
	AssignedTo  *kernel.UUID
	CreatedBy   kernel.UUID
	DisplayDate string
}

// RoleProjector derives role- and tab-scoped views from an order snapshot.
// It is a pure domain service: no state, no I/O.
type RoleProjector struct{}

// NewRoleProjector creates a projector.
func NewRoleProjector() RoleProjector {
	return RoleProjector{}
}

// Project filters, orders and formats the snapshot for one (role, actor, tab)
// triple.
//
// Visibility rules:
//   - Admin and operator see the full set in every tab
//   - A courier's "Nouvelles" tab shows every pending order, unfiltered by
//     assignment, since any courier may claim; "En cours" and "Terminées"
//     show only orders assigned to them
//   - A client sees only orders they created, with pending orders counted as
//     in progress: the client has no "new" bucket
//
// Rows are ordered newest first.
func (RoleProjector) Project(
	orders []*order.Order,
	role Role,
	actorID kernel.UUID,
	tab Tab,
) ([]ViewRow, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if err := tab.Validate(); err != nil {
		return nil, err
	}
	if role != RoleAdmin && role != RoleOperator {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}

	selected := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		if visibleTo(o, role, actorID) && inTab(o, role, tab) {
			selected = append(selected, o)
		}
	}

	// Newest first, id as a stable tie-break.
	sort.Slice(selected, func(i, j int) bool {
		if !selected[i].CreatedAt().Equal(selected[j].CreatedAt()) {
			return selected[i].CreatedAt().After(selected[j].CreatedAt())
		}
		return selected[i].ID().String() < selected[j].ID().String()
	})

	rows := make([]ViewRow, 0, len(selected))
	for _, o := range selected {
		rows = append(rows, formatRow(o))
	}

	return rows, nil
}

func visibleTo(o *order.Order, role Role, actorID kernel.UUID) bool {
	switch role {
	case RoleAdmin, RoleOperator:
		return true
	case RoleCourier:
		if o.Status() == order.Pending {
			return true
		}
		return o.AssignedTo() != nil && o.AssignedTo().IsEqual(actorID)
	case RoleClient:
		return o.CreatedBy().IsEqual(actorID)
	default:
		return false
	}
}

func inTab(o *order.Order, role Role, tab Tab) bool {
	status := o.Status()

	// Clients treat pending orders as in progress; they have no "new" bucket.
	if role == RoleClient {
		switch tab {
		case TabNew:
			return false
		case TabActive:
			return !status.IsTerminal()
		case TabDone:
			return status.IsTerminal()
		default:
			return false
		}
	}

	switch tab {
	case TabNew:
		return status == order.Pending
	case TabActive:
		return status != order.Pending && !status.IsTerminal()
	case TabDone:
		return status.IsTerminal()
	default:
		return false
	}
}

func formatRow(o *order.Order) ViewRow {
	details := o.Details()
	return ViewRow{
		OrderID:     o.ID(),
		Reference:   Reference(o.ID()),
		Status:      o.Status(),
		Route:       fmt.Sprintf("%s → %s", details.PickupAddress, details.DeliveryAddress),
		Weight:      details.Weight,
		AssignedTo:  o.AssignedTo(),
		CreatedBy:   o.CreatedBy(),
		DisplayDate: FormatDate(o.CreatedAt()),
	}
}

// Reference derives the human-facing reference number from an order id:
// "CMD-" followed by the first eight hex digits, uppercased.
func Reference(id kernel.UUID) string {
	raw := strings.ReplaceAll(id.String(), "-", "")
	if len(raw) < 8 {
		return "CMD-" + strings.ToUpper(raw)
	}
	return "CMD-" + strings.ToUpper(raw[:8])
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders a timestamp in the French long form used across the
// user interfaces, e.g. "12 juin 2026 à 15:04".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d à %02d:%02d",
		t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
