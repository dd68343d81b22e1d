package entities

// LocatorStrategy represents the kind of attribute a locator is built on
type LocatorStrategy string

const (
	StrategyDataTestID      LocatorStrategy = "data-testid"
	StrategyID              LocatorStrategy = "id"
	StrategyStableAttribute LocatorStrategy = "stable-attribute"
	StrategyText            LocatorStrategy = "text"
	StrategyDOMPath         LocatorStrategy = "dom-path"
)

// Locator represents an executable selector expression plus the strategy
// it was built from. Strategy always reflects the highest-priority
// attribute actually present on the record.
type Locator struct {
	Expression string          `json:"expression"`
	Strategy   LocatorStrategy `json:"strategy"`
}
