package schemabridge

import (
	"time"

	"github.com/jrazmi/stockdata/infrastructure/datastores"
	"github.com/jrazmi/stockdata/schema/reflector"
)

// Migration is one applied migration.
type Migration struct {
	Version   string    `json:"version"`
	Checksum  string    `json:"checksum"`
	AppliedAt time.Time `json:"appliedAt"`
}

// Verification is the outcome of checking the live schema.
type Verification struct {
	Source     string   `json:"source"`
	Schema     string   `json:"schema"`
	Tables     int      `json:"tables"`
	OK         bool     `json:"ok"`
	Violations []string `json:"violations"`
}

func toBridgeMigrations(applied []datastores.Migration) []Migration {
	out := make([]Migration, len(applied))
	for i, m := range applied {
		out[i] = Migration{Version: m.Version, Checksum: m.Checksum, AppliedAt: m.AppliedAt}
	}
	return out
}

func toVerification(schema *reflector.ReflectedSchema, violations []reflector.Violation) Verification {
	v := Verification{
		Source:     schema.Source,
		Schema:     schema.SchemaName,
		Tables:     len(schema.Tables),
		OK:         len(violations) == 0,
		Violations: make([]string, len(violations)),
	}
	for i, viol := range violations {
		v.Violations[i] = viol.String()
	}
	return v
}
