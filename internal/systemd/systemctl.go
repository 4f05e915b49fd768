package systemd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/trly/tickle/internal/execx"
	"github.com/trly/tickle/internal/log"
	"github.com/trly/tickle/internal/service"
)

// queriedProperties are requested from `systemctl show`. CanRestart is not
// reported by every systemd release; CanStart and CanStop are the fallback.
var queriedProperties = []string{
	"LoadState",
	"ActiveState",
	"Type",
	"RemainAfterExit",
	"CanStart",
	"CanStop",
	"CanRestart",
}

// CtlBackend drives units by shelling out to systemctl.
type CtlBackend struct {
	runner   execx.Runner
	userMode bool
	logger   log.Logger
}

// NewCtlBackend creates a systemctl backed Backend.
func NewCtlBackend(runner execx.Runner, userMode bool, logger log.Logger) *CtlBackend {
	return &CtlBackend{runner: runner, userMode: userMode, logger: logger}
}

// Name returns the backend name.
func (b *CtlBackend) Name() string {
	return "systemctl"
}

func (b *CtlBackend) args(args ...string) []string {
	if b.userMode {
		return append([]string{"--user"}, args...)
	}
	return args
}

// Query runs `systemctl show` for unit and parses the requested properties.
func (b *CtlBackend) Query(ctx context.Context, unit string) (*UnitStatus, error) {
	args := b.args("show", unit, "--property="+strings.Join(queriedProperties, ","))
	b.logger.Debug("Querying unit", "unit", unit)

	output, err := b.runner.CombinedOutput(ctx, "systemctl", args...)
	if err != nil {
		text := strings.TrimSpace(string(output))
		cause := err
		if text != "" {
			cause = fmt.Errorf("%w: %s", err, text)
		}
		switch {
		case execx.IsNotFound(err) || isUnavailableOutput(text):
			return nil, unavailable(unit, cause)
		case isUnitRejectedOutput(text):
			return nil, service.NewError(service.ErrUnitNotFound, unit, cause)
		default:
			return nil, fmt.Errorf("systemctl show %s: %w", unit, cause)
		}
	}

	status, err := ParseShowOutput(unit, output)
	if err != nil {
		return nil, unavailable(unit, err)
	}
	if status.LoadState == "not-found" {
		return nil, notFound(unit)
	}
	return status, nil
}

// Act runs `systemctl <action> <unit>`.
func (b *CtlBackend) Act(ctx context.Context, unit string, action Action) error {
	b.logger.Debug("Running unit action", "unit", unit, "action", action.String())

	output, err := b.runner.CombinedOutput(ctx, "systemctl", b.args(action.String(), unit)...)
	if err == nil {
		return nil
	}

	text := strings.TrimSpace(string(output))
	if execx.IsNotFound(err) || isUnavailableOutput(text) {
		return unavailable(unit, err)
	}
	if text != "" {
		return errors.New(text)
	}
	return fmt.Errorf("systemctl %s %s: %w", action, unit, err)
}

// ParseShowOutput parses the KEY=VALUE lines printed by `systemctl show`.
func ParseShowOutput(unit string, output []byte) (*UnitStatus, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
		AllowBooleanKeys:        true,
	}, output)
	if err != nil {
		return nil, fmt.Errorf("error parsing systemctl show output for %s: %w", unit, err)
	}

	section := file.Section(ini.DefaultSection)
	if !section.HasKey("LoadState") {
		return nil, fmt.Errorf("systemctl show output for %s has no LoadState", unit)
	}

	rawType := section.Key("Type").String()
	props := service.UnitProperties{
		Type:            service.ParseServiceType(rawType),
		RawType:         rawType,
		RemainAfterExit: section.Key("RemainAfterExit").MustBool(false),
	}
	if section.HasKey("CanRestart") {
		props.CanRestart = section.Key("CanRestart").MustBool(false)
	} else {
		props.CanRestart = section.Key("CanStart").MustBool(false) && section.Key("CanStop").MustBool(false)
	}

	return &UnitStatus{
		Name:       unit,
		LoadState:  section.Key("LoadState").String(),
		State:      service.ParseState(section.Key("ActiveState").String()),
		Properties: props,
	}, nil
}
