package quota

import "github.com/mkraev/neurocontent-bot/types"

// Gate decides whether a generation request may proceed. The configured
// admin identity bypasses every check and never consumes units; adminID 0
// means nobody is exempt.
type Gate struct {
	ledger  types.LedgerStore
	adminID int64
}

func NewGate(ledger types.LedgerStore, adminID int64) *Gate {
	return &Gate{ledger: ledger, adminID: adminID}
}

func (g *Gate) exempt(userID int64) bool {
	return g.adminID != 0 && userID == g.adminID
}

// Admit is the read-only admission check, used for display purposes.
func (g *Gate) Admit(userID int64) (bool, error) {
	if g.exempt(userID) {
		return true, nil
	}
	used, limit, err := g.ledger.GetUsage(userID)
	if err != nil {
		return false, err
	}
	return used < limit, nil
}

// TryConsume admits the request and reserves one unit in a single atomic
// step; two racing requests cannot both spend the last unit.
func (g *Gate) TryConsume(userID int64) (bool, error) {
	if g.exempt(userID) {
		return true, nil
	}
	return g.ledger.TryConsume(userID)
}

// Refund releases a reserved unit after the provider call failed.
func (g *Gate) Refund(userID int64) error {
	if g.exempt(userID) {
		return nil
	}
	return g.ledger.RefundRequest(userID)
}
