// Package command provides the catalog browser's command registry, parser,
// and built-in command definitions.
package command

// Categories for organizing commands in help output.
const (
	CategoryBrowse = "browse"
	CategoryUnit   = "unit"
	CategorySystem = "system"
)

// CategoryOrder lists categories in help display order.
var CategoryOrder = []string{CategoryBrowse, CategoryUnit, CategorySystem}

// Handler identifiers mapping commands to browser actions.
const (
	HandlerList   = "list"
	HandlerSearch = "search"
	HandlerRarity = "rarity"
	HandlerTarget = "target"
	HandlerClear  = "clear"
	HandlerShow   = "show"
	HandlerLevel  = "level"
	HandlerPlus   = "plus"
	HandlerForm   = "form"
	HandlerTable  = "table"
	HandlerClose  = "close"
	HandlerHelp   = "help"
	HandlerQuit   = "quit"
)

// Command defines a browser command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument syntax, without the command name.
	Usage string
	// Help is the short help text displayed to users.
	Help string
	// Category groups the command (browse, unit, system).
	Category string
	// Handler names the browser action the command triggers.
	Handler string
}

// BuiltinCommands returns all built-in browser commands.
func BuiltinCommands() []Command {
	return []Command{
		// Grid commands
		{Name: "list", Aliases: []string{"ls", "grid"}, Help: "Show the unit grid with the current filters", Category: CategoryBrowse, Handler: HandlerList},
		{Name: "search", Aliases: []string{"find", "/"}, Usage: "[text]", Help: "Filter by name or code; no text clears the search", Category: CategoryBrowse, Handler: HandlerSearch},
		{Name: "rarity", Aliases: []string{"r"}, Usage: "<rarity>", Help: "Toggle the rarity filter (one rarity at a time)", Category: CategoryBrowse, Handler: HandlerRarity},
		{Name: "target", Aliases: []string{"t"}, Usage: "<trait>", Help: "Toggle a target trait filter (any selected trait matches)", Category: CategoryBrowse, Handler: HandlerTarget},
		{Name: "clear", Aliases: []string{"reset"}, Help: "Clear all filters and the search", Category: CategoryBrowse, Handler: HandlerClear},

		// Stat panel commands
		{Name: "show", Aliases: []string{"open", "view"}, Usage: "<code|#>", Help: "Open the stat panel for a unit", Category: CategoryUnit, Handler: HandlerShow},
		{Name: "level", Aliases: []string{"lv", "lvl"}, Usage: "[1-20|up|down]", Help: "Set the unit level (bare resets to 1)", Category: CategoryUnit, Handler: HandlerLevel},
		{Name: "plus", Aliases: []string{"+"}, Usage: "[0-90|up|down]", Help: "Set the plus level (bare resets to 0)", Category: CategoryUnit, Handler: HandlerPlus},
		{Name: "form", Aliases: []string{"f"}, Usage: "<#|next|prev>", Help: "Switch evolution form", Category: CategoryUnit, Handler: HandlerForm},
		{Name: "table", Aliases: []string{"curve"}, Usage: "[from] [to]", Help: "Show stats across total levels for the open unit", Category: CategoryUnit, Handler: HandlerTable},
		{Name: "close", Aliases: []string{"back"}, Help: "Close the stat panel", Category: CategoryUnit, Handler: HandlerClose},

		// System commands
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Disconnect from the browser", Category: CategorySystem, Handler: HandlerQuit},
	}
}
