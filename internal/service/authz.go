package service

import (
	"errors"

	"stock-tracker/internal/domain"
)

var ErrAccessDenied = errors.New("insufficient permissions")

// Capability names one guarded operation at the component boundary. Role
// checks happen here, once per operation, instead of being scattered across
// menu branches.
type Capability string

const (
	CapCatalogWrite  Capability = "catalog:write"
	CapCatalogDelete Capability = "catalog:delete"
	CapLedgerPost    Capability = "ledger:post"
	CapReportView    Capability = "report:view"
	CapAccountList   Capability = "accounts:list"
)

// capabilityRoles is the single source of truth for who may do what. Staff
// keeping catalog write access mirrors the observed menus; see DESIGN.md for
// the open question on whether that is intended.
var capabilityRoles = map[Capability][]domain.Role{
	CapCatalogWrite:  {domain.RoleAdmin, domain.RoleStaff},
	CapCatalogDelete: {domain.RoleAdmin},
	CapLedgerPost:    {domain.RoleAdmin},
	CapReportView:    {domain.RoleAdmin},
	CapAccountList:   {domain.RoleAdmin},
}

// requireRole checks that the acting role is allowed the capability.
func requireRole(actor domain.Role, cap Capability) error {
	for _, allowed := range capabilityRoles[cap] {
		if actor == allowed {
			return nil
		}
	}
	return ErrAccessDenied
}
