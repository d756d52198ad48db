package deck

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/paneldeck/internal/anim"
	"github.com/atomicstack/paneldeck/internal/flow"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/logging/events"
	"github.com/atomicstack/paneldeck/internal/manager"
	"github.com/atomicstack/paneldeck/internal/window"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure of a deck file.
var ErrInvalid = errors.New("invalid deck")

// File is the YAML form of a deck. Unset fields fall back to the window and
// manager defaults.
type File struct {
	Flow            flow.Kind    `yaml:"flow"`
	AllowWrap       *bool        `yaml:"allow_wrap"`
	DefaultWindow   string       `yaml:"default_window"`
	CloseAllOnStart *bool        `yaml:"close_all_on_start"`
	Animated        *bool        `yaml:"animated"`
	Windows         []WindowSpec `yaml:"windows"`

	// Path is where the deck was loaded from; empty for built-in decks.
	Path string `yaml:"-"`
}

// WindowSpec configures one panel.
type WindowSpec struct {
	Name      string                      `yaml:"name"`
	Title     string                      `yaml:"title"`
	Body      []string                    `yaml:"body"`
	Size      *layout.Size                `yaml:"size"`
	From      *layout.Position            `yaml:"from"`
	Stay      *layout.Position            `yaml:"stay"`
	To        *layout.Position            `yaml:"to"`
	FromBlend *float64                    `yaml:"from_blend"`
	ToBlend   *float64                    `yaml:"to_blend"`
	Scale     *window.Triple[layout.Vec2] `yaml:"scale"`
	Rotation  *window.Triple[float64]     `yaml:"rotation"`
	Alpha     *window.Triple[float64]     `yaml:"alpha"`
	Opening   *TransitionSpec             `yaml:"opening"`
	Closing   *TransitionSpec             `yaml:"closing"`
	Watchdog  time.Duration               `yaml:"watchdog"`
}

// TransitionSpec tunes one direction of a window's transitions.
type TransitionSpec struct {
	Duration *time.Duration `yaml:"duration"`
	Ease     *anim.Ease     `yaml:"ease"`
	Wait     *bool          `yaml:"wait"`
}

// Overrides are command-line settings that beat the deck file.
type Overrides struct {
	Flow          string
	AllowWrap     *bool
	DefaultWindow string
	NoAnimation   bool
}

// Load reads and validates the deck at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	file, err := Parse(data)
	if err != nil {
		events.Deck.Error(path, err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.Path = path
	events.Deck.Load(path, len(file.Windows), string(file.Flow))
	return file, nil
}

// Parse decodes and validates a deck. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if file.Flow == "" {
		file.Flow = flow.KindCarousel
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks the deck for values no window can use.
func (f *File) Validate() error {
	if _, err := flow.ParseKind(string(f.Flow)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(f.Windows) == 0 {
		return fmt.Errorf("%w: no windows declared", ErrInvalid)
	}
	for i, w := range f.Windows {
		if w.Name == "" {
			return fmt.Errorf("%w: window %d has no name", ErrInvalid, i)
		}
		if w.Size != nil && (w.Size.W <= 0 || w.Size.H <= 0) {
			return fmt.Errorf("%w: window %q has a non-positive size", ErrInvalid, w.Name)
		}
		for _, blend := range []*float64{w.FromBlend, w.ToBlend} {
			if blend != nil && (*blend < 0 || *blend > 1) {
				return fmt.Errorf("%w: window %q blend %v outside [0,1]", ErrInvalid, w.Name, *blend)
			}
		}
		for _, t := range []*TransitionSpec{w.Opening, w.Closing} {
			if t != nil && t.Duration != nil && *t.Duration < 0 {
				return fmt.Errorf("%w: window %q has a negative duration", ErrInvalid, w.Name)
			}
		}
		if w.Watchdog < 0 {
			return fmt.Errorf("%w: window %q has a negative watchdog", ErrInvalid, w.Name)
		}
	}
	return nil
}

// Apply folds command-line overrides into the deck.
func (f *File) Apply(o Overrides) error {
	if o.Flow != "" {
		kind, err := flow.ParseKind(o.Flow)
		if err != nil {
			return err
		}
		f.Flow = kind
	}
	if o.AllowWrap != nil {
		wrap := *o.AllowWrap
		f.AllowWrap = &wrap
	}
	if o.DefaultWindow != "" {
		f.DefaultWindow = o.DefaultWindow
	}
	if o.NoAnimation {
		animated := false
		f.Animated = &animated
	}
	return nil
}

// Options converts the deck-level settings.
func (f *File) Options() manager.Options {
	opts := manager.DefaultOptions()
	opts.Flow = f.Flow
	opts.DefaultWindow = f.DefaultWindow
	if f.AllowWrap != nil {
		opts.AllowWrap = *f.AllowWrap
	}
	if f.CloseAllOnStart != nil {
		opts.CloseAllOnStart = *f.CloseAllOnStart
	}
	if f.Animated != nil {
		opts.Animated = *f.Animated
	}
	return opts
}

// Config converts one window spec, starting from window.DefaultConfig.
func (s WindowSpec) Config() window.Config {
	cfg := window.DefaultConfig(s.Name)
	if s.Title != "" {
		cfg.Title = s.Title
	}
	cfg.Body = append([]string(nil), s.Body...)
	if s.Size != nil {
		cfg.Size = *s.Size
	}
	if s.From != nil {
		cfg.From = *s.From
	}
	if s.Stay != nil {
		cfg.Stay = *s.Stay
	}
	if s.To != nil {
		cfg.To = *s.To
	}
	if s.FromBlend != nil {
		cfg.FromBlend = *s.FromBlend
	}
	if s.ToBlend != nil {
		cfg.ToBlend = *s.ToBlend
	}
	if s.Scale != nil {
		cfg.Scale = *s.Scale
	}
	if s.Rotation != nil {
		cfg.Rotation = *s.Rotation
	}
	if s.Alpha != nil {
		cfg.Alpha = *s.Alpha
	}
	if t := s.Opening; t != nil {
		if t.Duration != nil {
			cfg.OpeningDuration = *t.Duration
		}
		if t.Ease != nil {
			cfg.OpeningEase = *t.Ease
		}
		if t.Wait != nil {
			cfg.WaitUntilOpeningEnds = *t.Wait
		}
	}
	if t := s.Closing; t != nil {
		if t.Duration != nil {
			cfg.ClosingDuration = *t.Duration
		}
		if t.Ease != nil {
			cfg.ClosingEase = *t.Ease
		}
		if t.Wait != nil {
			cfg.WaitUntilClosingEnds = *t.Wait
		}
	}
	cfg.Watchdog = s.Watchdog
	return cfg
}

// Configs converts every window spec in deck order.
func (f *File) Configs() []window.Config {
	out := make([]window.Config, len(f.Windows))
	for i, spec := range f.Windows {
		out[i] = spec.Config()
	}
	return out
}
