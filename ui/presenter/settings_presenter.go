package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/soocke/blitzcrop/config"
	"github.com/soocke/blitzcrop/domain/output"
)

// SettingsForm carries the raw texts of the settings dialog.
type SettingsForm struct {
	Template        string
	Quality         string
	Interpolation   string
	ForgetMetadata  string
	Overwrite       string
	AdvanceOnAccept string
}

// SettingsPresenter validates the settings form, writes it into the shared
// config and persists it.
type SettingsPresenter struct {
	cfg    *config.Config
	path   string
	logger *slog.Logger

	// OnApplied is called after a successful Apply with the parsed template.
	OnApplied func(cfg *config.Config, tmpl *output.Template)
}

func NewSettingsPresenter(cfg *config.Config, path string, logger *slog.Logger) *SettingsPresenter {
	return &SettingsPresenter{cfg: cfg, path: path, logger: logger}
}

// Form returns the current settings as form texts.
func (p *SettingsPresenter) Form() SettingsForm {
	if p == nil || p.cfg == nil {
		return SettingsForm{}
	}
	c := p.cfg
	return SettingsForm{
		Template:        c.FileNameTemplate,
		Quality:         strconv.Itoa(c.Quality),
		Interpolation:   c.Interpolation,
		ForgetMetadata:  strconv.FormatBool(c.ForgetMetadata),
		Overwrite:       strconv.FormatBool(c.Overwrite),
		AdvanceOnAccept: strconv.FormatBool(c.AdvanceOnAccept),
	}
}

// Apply parses f. Invalid input leaves the config untouched and is returned
// as an error suitable for display. A failed save is logged and returned
// but the new values stay in effect.
func (p *SettingsPresenter) Apply(f SettingsForm) error {
	if p == nil || p.cfg == nil {
		return errors.New("no configuration")
	}
	cfg := *p.cfg // copy
	var errs []error

	tmpl, err := output.ParseTemplate(strings.TrimSpace(f.Template))
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.FileNameTemplate = tmpl.String()
	}
	if q, ok := parseIntField(f.Quality); ok && q >= 1 && q <= 100 {
		cfg.Quality = q
	} else {
		errs = append(errs, fmt.Errorf("quality %q: want 1-100", strings.TrimSpace(f.Quality)))
	}
	interp := strings.ToLower(strings.TrimSpace(f.Interpolation))
	if slices.Contains(config.Interpolations(), interp) {
		cfg.Interpolation = interp
	} else {
		errs = append(errs, fmt.Errorf("interpolation %q: want one of %s", interp, strings.Join(config.Interpolations(), ", ")))
	}
	assignBool := func(name, s string, dst *bool) {
		if b, ok := parseBoolLoose(s); ok {
			*dst = b
			return
		}
		errs = append(errs, fmt.Errorf("%s %q: want true or false", name, strings.TrimSpace(s)))
	}
	assignBool("forget metadata", f.ForgetMetadata, &cfg.ForgetMetadata)
	assignBool("overwrite", f.Overwrite, &cfg.Overwrite)
	assignBool("advance on accept", f.AdvanceOnAccept, &cfg.AdvanceOnAccept)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	*p.cfg = cfg
	if p.OnApplied != nil {
		p.OnApplied(p.cfg, tmpl)
	}
	if err := p.cfg.Save(p.path); err != nil {
		if p.logger != nil {
			p.logger.Error("config save failed", "error", err)
		}
		return fmt.Errorf("settings applied but not saved: %w", err)
	}
	if p.logger != nil {
		p.logger.Info("config saved", "path", p.path)
	}
	return nil
}

func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
