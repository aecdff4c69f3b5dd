package caretools

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/m-rashid-2024/careagent/careapi"
	"github.com/m-rashid-2024/careagent/tool"
)

// PersonArgs are the arguments of every retriever tool.
type PersonArgs struct {
	FirstName string `json:"firstname" jsonschema:"Vorname des Klienten"`
	LastName  string `json:"lastname" jsonschema:"Nachname des Klienten"`
}

// Formatter renders a payload for the named client. An empty result means
// there was nothing to report.
type Formatter func(payload []byte, who PersonArgs) (string, error)

// Retriever describes one lookup tool.
type Retriever struct {
	Name        string
	Description string
	// Document is the document type to read. Empty means the client record itself.
	Document careapi.DocumentType
	// Empty is returned when Format yields nothing. If unset, the empty string is returned.
	Empty  string
	Format Formatter
}

// Service runs retrievers against the care API.
type Service struct {
	api        *careapi.Client
	retrievers []Retriever
	log        zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithRetrievers replaces the default catalog.
func WithRetrievers(rs ...Retriever) Option {
	return func(s *Service) {
		s.retrievers = rs
	}
}

// NewService creates a Service serving the default catalog.
func NewService(api *careapi.Client, opts ...Option) *Service {
	s := &Service{
		api:        api,
		retrievers: Catalog(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Retrievers returns the retrievers served by s.
func (s *Service) Retrievers() []Retriever {
	out := make([]Retriever, len(s.retrievers))
	copy(out, s.retrievers)
	return out
}

// Run executes r for the given client. Lookup failures are returned as *Failure.
func (s *Service) Run(ctx context.Context, r Retriever, args PersonArgs) (string, error) {
	log := s.log.With().Str("tool", r.Name).Str("firstname", args.FirstName).Str("lastname", args.LastName).Logger()
	log.Debug().Msg("retriever called")

	payload, err := s.fetch(ctx, r, args)
	if err != nil {
		return "", s.fail(log, err)
	}

	out, err := r.Format(payload, args)
	if err != nil {
		return "", s.fail(log, err)
	}
	if out == "" {
		log.Info().Msg(orDefault(r.Empty, "empty result"))
		return r.Empty, nil
	}
	return out, nil
}

func (s *Service) fetch(ctx context.Context, r Retriever, args PersonArgs) ([]byte, error) {
	if r.Document == "" {
		cl, err := s.api.FindClient(ctx, args.FirstName, args.LastName)
		if err != nil {
			return nil, err
		}
		return cl.Raw, nil
	}
	return s.api.Fetch(ctx, args.FirstName, args.LastName, r.Document)
}

func (s *Service) fail(log zerolog.Logger, err error) error {
	text := sentinelFor(err)
	if text == SentinelAPIError {
		log.Error().Err(err).Msg(text)
	} else {
		log.Info().Msg(text)
	}
	return &Failure{Text: text, Err: err}
}

// Registrations returns one tool registration per retriever.
func (s *Service) Registrations() []tool.Registration {
	regs := make([]tool.Registration, 0, len(s.retrievers))
	for _, r := range s.retrievers {
		regs = append(regs, tool.Func(r.Name, r.Description, func(ctx context.Context, args PersonArgs) (string, error) {
			return s.Run(ctx, r, args)
		}))
	}
	return regs
}

// Register adds every retriever to reg.
func (s *Service) Register(reg *tool.Registry) *tool.Registry {
	return reg.Add(s.Registrations()...)
}

// IsFailure reports whether err came from a failed lookup.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
