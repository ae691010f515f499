package ooxmlschema

import (
	"os"
	"sync"

	"github.com/jzelinskie/stringz"

	log "github.com/jacoelho/ooxmlschema/internal/logging"
	"github.com/jacoelho/ooxmlschema/pkg/artifact"
)

// EnvSchemaPath names the environment variable holding the default artifact path.
const EnvSchemaPath = "OOXMLSCHEMA_PATH"

var defaultSchema struct {
	mu     sync.Mutex
	path   string
	schema *Schema
}

// SetDefaultPath sets the artifact Default loads. It has no effect once the
// default schema has been loaded.
func SetDefaultPath(path string) {
	defaultSchema.mu.Lock()
	defer defaultSchema.mu.Unlock()
	defaultSchema.path = path
}

// DefaultPath returns the artifact path Default would load: the path set with
// SetDefaultPath, then $OOXMLSCHEMA_PATH, then schema.transitional.json in the
// working directory.
func DefaultPath() string {
	defaultSchema.mu.Lock()
	defer defaultSchema.mu.Unlock()
	return defaultPathLocked()
}

func defaultPathLocked() string {
	if defaultSchema.path != "" {
		return defaultSchema.path
	}
	return stringz.DefaultEmpty(os.Getenv(EnvSchemaPath), artifact.FileName)
}

// Default returns the process-wide schema, loading it on first use. A failed
// load is not remembered, so a later call retries.
func Default() (*Schema, error) {
	defaultSchema.mu.Lock()
	defer defaultSchema.mu.Unlock()
	if defaultSchema.schema != nil {
		return defaultSchema.schema, nil
	}
	path := defaultPathLocked()
	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("elements", len(s.art.Elements)).Msg("loaded default schema")
	defaultSchema.schema = s
	return s, nil
}

// LoadSchemaSync is an alias of Default.
func LoadSchemaSync() (*Schema, error) {
	return Default()
}

// ResetDefaultForTesting forgets the default schema and path.
func ResetDefaultForTesting() {
	defaultSchema.mu.Lock()
	defer defaultSchema.mu.Unlock()
	defaultSchema.path = ""
	defaultSchema.schema = nil
}

func loadedDefault() *Schema {
	defaultSchema.mu.Lock()
	defer defaultSchema.mu.Unlock()
	return defaultSchema.schema
}

func defaultOrEmpty() *Schema {
	s, err := Default()
	if err != nil {
		log.Debug().Err(err).Msg("default schema unavailable")
		return nil
	}
	return s
}

// ChildrenOf returns the children legal under tag in the default schema, or
// an empty list when the schema cannot be loaded.
func ChildrenOf(tag string) []string {
	return defaultOrEmpty().AllowedChildren(tag)
}

// AllTags returns the element names of the default schema matching q.
func AllTags(q TagQuery) []string {
	return defaultOrEmpty().AllTags(q)
}

// Namespaces returns the URI to prefix table of the default schema.
func Namespaces() map[string]string {
	return defaultOrEmpty().Namespaces()
}
