// Package handlers provides the Telnet catalog browser session handler and
// its text renderers.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/nyanko/internal/frontend/command"
	"github.com/cory-johannsen/nyanko/internal/frontend/session"
	"github.com/cory-johannsen/nyanko/internal/frontend/telnet"
	"github.com/cory-johannsen/nyanko/internal/game/catalog"
	"github.com/cory-johannsen/nyanko/internal/game/growth"
	"github.com/cory-johannsen/nyanko/internal/game/levelinput"
	"github.com/cory-johannsen/nyanko/internal/game/unit"
	"github.com/cory-johannsen/nyanko/internal/observability"
)

// maxTotalLevel is the highest total level the stat panel can reach.
var maxTotalLevel = levelinput.LevelBounds.Max + levelinput.PlusBounds.Max

const welcomeBanner = telnet.Bold + telnet.BrightYellow + `
  /\_/\   냥코 유닛 도감
 ( o.o )  Nyanko unit catalog
  > ^ <` + telnet.Reset + `

  Type ` + telnet.Green + `help` + telnet.Reset + ` for commands, ` + telnet.Green + `show <code|#>` + telnet.Reset + ` to open a unit.
`

// BrowserHandler implements telnet.SessionHandler. It serves the catalog grid
// and per-unit stat panel to one client per session.
type BrowserHandler struct {
	catalog  *catalog.Catalog
	registry *command.Registry
	sessions *session.Manager
	logger   *zap.Logger
}

// NewBrowserHandler creates a BrowserHandler over an immutable catalog.
//
// Precondition: c, sessions, and logger must be non-nil.
// Postcondition: Returns a BrowserHandler ready to handle sessions.
func NewBrowserHandler(c *catalog.Catalog, sessions *session.Manager, logger *zap.Logger) *BrowserHandler {
	return &BrowserHandler{
		catalog:  c,
		registry: command.DefaultRegistry(),
		sessions: sessions,
		logger:   logger,
	}
}

// HandleSession implements telnet.SessionHandler. It registers a browser
// session, shows the grid, and runs the command loop until the client quits,
// disconnects, or ctx is cancelled.
//
// Postcondition: Returns nil on clean quit, ctx.Err() on cancellation, or a wrapped error on failure.
func (h *BrowserHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	addr := conn.RemoteAddr().String()

	sess := h.sessions.Open(addr)
	defer func() { _ = h.sessions.Close(sess.ID) }()
	log := observability.SessionLogger(h.logger, sess.ID, addr)
	log.Info("browser session opened", zap.Int("sessions", h.sessions.Count()))

	// Unblock ReadLine on shutdown.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
		_ = conn.Close()
	})
	defer stop()

	if err := conn.Write([]byte(strings.ReplaceAll(welcomeBanner, "\n", "\r\n"))); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}
	if err := conn.WriteBlock(h.renderList(sess.View)); err != nil {
		return fmt.Errorf("sending grid: %w", err)
	}

	commands := 0
	for {
		if err := conn.WritePrompt(h.prompt(sess.View)); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, err := conn.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading input: %w", err)
		}

		out, quit := h.dispatch(sess.View, line)
		if out != "" {
			if err := conn.WriteBlock(out); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		if strings.TrimSpace(line) != "" {
			commands++
		}
		if quit {
			log.Info("browser session closed",
				zap.Int("commands", commands),
				zap.Duration("session_duration", time.Since(sess.ConnectedAt)),
			)
			return nil
		}
	}
}

func (h *BrowserHandler) prompt(v *session.View) string {
	if r := v.Selected(); r != nil {
		return telnet.Colorf(telnet.BrightCyan, "[%s Lv%d+%d]> ", r.Code, v.Level(), v.PlusLevel())
	}
	return telnet.Colorf(telnet.BrightCyan, "[%d units]> ", len(h.catalog.Filter(v.Filter)))
}

// dispatch runs one input line against v and returns the text to show.
//
// Postcondition: quit is true only for the quit command.
func (h *BrowserHandler) dispatch(v *session.View, line string) (out string, quit bool) {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return "", false
	}

	cmd, ok := h.registry.Resolve(parsed.Command)
	if !ok {
		return telnet.Colorf(telnet.Red, "Unknown command %q. Type help for a list of commands.", parsed.Command), false
	}

	switch cmd.Handler {
	case command.HandlerList:
		return h.renderList(v), false
	case command.HandlerSearch:
		v.Filter.Query = parsed.RawArgs
		return h.renderList(v), false
	case command.HandlerRarity:
		return h.handleRarity(v, parsed.Args), false
	case command.HandlerTarget:
		return h.handleTarget(v, parsed.Args), false
	case command.HandlerClear:
		v.Filter.Reset()
		return h.renderList(v), false
	case command.HandlerShow:
		return h.handleShow(v, parsed.Args), false
	case command.HandlerLevel:
		return h.handleLevel(v, parsed, v.SetLevel, v.StepLevel), false
	case command.HandlerPlus:
		return h.handleLevel(v, parsed, v.SetPlusLevel, v.StepPlusLevel), false
	case command.HandlerForm:
		return h.handleForm(v, parsed.Args), false
	case command.HandlerTable:
		return h.handleTable(v, parsed.Args), false
	case command.HandlerClose:
		v.Close()
		return h.renderList(v), false
	case command.HandlerHelp:
		return RenderHelp(h.registry), false
	case command.HandlerQuit:
		return telnet.Colorize(telnet.Cyan, "Goodbye!"), true
	default:
		return telnet.Colorf(telnet.Red, "Command %q is not available here.", cmd.Name), false
	}
}

func (h *BrowserHandler) renderList(v *session.View) string {
	return RenderFilters(v.Filter) + RenderGrid(h.catalog.Filter(v.Filter), h.catalog.Len())
}

func (h *BrowserHandler) handleRarity(v *session.View, args []string) string {
	if len(args) == 0 {
		return RenderFilters(v.Filter)
	}
	r := unit.Rarity(strings.ToLower(args[0]))
	if !r.Valid() {
		return usageError("Unknown rarity %q. Choose one of: %s", args[0], joinRarities())
	}
	v.Filter.ToggleRarity(r)
	return h.renderList(v)
}

func (h *BrowserHandler) handleTarget(v *session.View, args []string) string {
	if len(args) == 0 {
		return RenderFilters(v.Filter)
	}
	toggles := make([]unit.Target, 0, len(args))
	for _, a := range args {
		t := unit.Target(strings.ToLower(a))
		if !t.Valid() {
			return usageError("Unknown target %q. Choose from: %s", a, joinTargets(unit.Targets))
		}
		toggles = append(toggles, t)
	}
	for _, t := range toggles {
		v.Filter.ToggleTarget(t)
	}
	return h.renderList(v)
}

func (h *BrowserHandler) handleShow(v *session.View, args []string) string {
	if len(args) == 0 {
		return usageError("Usage: show <code|#>")
	}
	rec, ok := h.lookup(v, args[0])
	if !ok {
		return usageError("No unit %q. Use a code like CAT_001 or a row number from list.", args[0])
	}
	v.Select(rec)
	return h.renderPanel(v)
}

// lookup resolves a row number in the current grid or a unit code.
func (h *BrowserHandler) lookup(v *session.View, ref string) (*unit.Record, bool) {
	if n, err := strconv.Atoi(ref); err == nil {
		if !v.Filter.Active() {
			return h.catalog.At(n - 1)
		}
		recs := h.catalog.Filter(v.Filter)
		if n < 1 || n > len(recs) {
			return nil, false
		}
		return recs[n-1], true
	}
	return h.catalog.ByCode(ref)
}

func (h *BrowserHandler) handleLevel(
	v *session.View,
	parsed command.ParseResult,
	set func(string) (int, error),
	step func(int) (int, error),
) string {
	// A bare command clears the input, which resets to the default.
	raw := ""
	if len(parsed.Args) > 0 {
		raw = parsed.Args[0]
	}
	var err error
	switch strings.ToLower(raw) {
	case "up":
		_, err = step(1)
	case "down":
		_, err = step(-1)
	default:
		_, err = set(raw)
	}
	if err != nil {
		return h.panelError(v, err)
	}
	return h.renderPanel(v)
}

func (h *BrowserHandler) handleForm(v *session.View, args []string) string {
	if v.Selected() == nil {
		return h.panelError(v, session.ErrNoSelection)
	}
	if len(args) == 0 {
		return usageError("Usage: form <1-%d|next|prev>", v.Selected().FormCount())
	}
	var err error
	switch strings.ToLower(args[0]) {
	case "next":
		_, err = v.CycleForm(1)
	case "prev":
		_, err = v.CycleForm(-1)
	default:
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			return usageError("Usage: form <1-%d|next|prev>", v.Selected().FormCount())
		}
		err = v.SetForm(n - 1)
	}
	if err != nil {
		return h.panelError(v, err)
	}
	return h.renderPanel(v)
}

func (h *BrowserHandler) handleTable(v *session.View, args []string) string {
	base, err := v.BaseStats()
	if err != nil {
		return h.panelError(v, err)
	}
	from, to := 1, maxTotalLevel
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usageError("Usage: table [from] [to]")
		}
		from = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return usageError("Usage: table [from] [to]")
		}
		to = n
	}
	from = max(1, min(from, maxTotalLevel))
	to = max(1, min(to, maxTotalLevel))
	if from > to {
		from, to = to, from
	}

	rows, err := growth.Table(v.Selected().Tier, base, from, to)
	if err != nil {
		h.logger.Error("growth table", zap.String("code", v.Selected().Code), zap.Error(err))
		return usageError("Cannot compute growth for %s: %v", v.Selected().Code, err)
	}
	return RenderCurveTable(v.Selected(), v.Form(), rows)
}

// renderPanel recomputes the open unit's stats and formats the panel.
func (h *BrowserHandler) renderPanel(v *session.View) string {
	stats, err := v.Effective()
	if err != nil {
		return h.panelError(v, err)
	}
	return RenderStatPanel(StatPanel{
		Record:    v.Selected(),
		Form:      v.Form(),
		Level:     v.Level(),
		PlusLevel: v.PlusLevel(),
		Stats:     stats,
	})
}

func (h *BrowserHandler) panelError(v *session.View, err error) string {
	switch {
	case errors.Is(err, session.ErrNoSelection):
		return usageError("Open a unit first with show <code|#>.")
	case errors.Is(err, session.ErrFormOutOfRange):
		return usageError("%s has %d forms.", v.Selected().Code, v.Selected().FormCount())
	case errors.Is(err, growth.ErrInvalidGrowthTier):
		h.logger.Error("unit has an invalid growth tier",
			zap.String("code", v.Selected().Code),
			zap.Error(err),
		)
		return usageError("Stats for %s are unavailable.", v.Selected().Code)
	default:
		h.logger.Error("stat panel", zap.Error(err))
		return usageError("Something went wrong: %v", err)
	}
}

func usageError(format string, args ...any) string {
	return telnet.Colorf(telnet.Red, format, args...)
}

func joinRarities() string {
	parts := make([]string, len(unit.Rarities))
	for i, r := range unit.Rarities {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
