package http

import (
	"github.com/labstack/echo/v4"
)

// Register wires the tenant-scoped API onto the router group. Auth and
// idempotency middleware are applied by the caller.
func Register(g *echo.Group, rules *RuleHandler, approvals *ApprovalHandler, transfers *TransferHandler, bulks *BulkHandler, inv *InventoryHandler) {
	// approval rules + direct rule-engine probe
	g.POST("/approvals/rules", rules.Create)
	g.GET("/approvals/rules", rules.List)
	g.PUT("/approvals/rules/:id", rules.Update)
	g.DELETE("/approvals/rules/:id", rules.Archive)
	g.POST("/approvals/check-required", rules.CheckRequired)

	// approval requests
	g.POST("/approvals/requests", approvals.Create)
	g.GET("/approvals/requests/pending", approvals.ListPending)
	g.GET("/approvals/requests/:id", approvals.Get)
	g.POST("/approvals/requests/:id/process", approvals.Process)
	g.POST("/approvals/requests/:id/cancel", approvals.Cancel)

	// bulk transfers
	g.POST("/bulk-transfers", bulks.Create)
	g.GET("/bulk-transfers", bulks.List)
	g.GET("/bulk-transfers/:id", bulks.Get)
	g.POST("/bulk-transfers/:id/submit", bulks.Submit)
	g.POST("/bulk-transfers/:id/approve", bulks.Approve)
	g.POST("/bulk-transfers/:id/cancel", bulks.Cancel)

	// single transfers
	g.POST("/inventory-transfers", transfers.Create)
	g.GET("/inventory-transfers", transfers.List)
	g.GET("/inventory-transfers/:id", transfers.Get)
	g.PUT("/inventory-transfers/:id/:action", transfers.Transition)

	// inventory
	g.POST("/inventory/receipts", inv.Receive)
	g.GET("/inventory", inv.Levels)
}
