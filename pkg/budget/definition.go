// Package budget matches a year-end trial balance against the venue's
// budget definition and computes the remaining budget per post.
package budget

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Post is one named line of the annual budget.
type Post struct {
	Key      string   `yaml:"key"`
	Name     string   `yaml:"name"`
	Accounts []string `yaml:"accounts"`
	Order    int      `yaml:"order"`
	// Factor is +1 for expense posts (remaining = budget - actual) and -1
	// for income posts (remaining = actual - budget).
	Factor int `yaml:"factor"`
}

// Definition is the load-once budget configuration: the posts and, per
// fiscal year, the committed amount per post key.
type Definition struct {
	Posts []Post                        `yaml:"posts"`
	Years map[string]map[string]float64 `yaml:"years"`

	index map[string]Post // account code -> post, built at load time
}

// LoadDefinition reads and validates a budget definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read budget definition: %w", err)
	}
	return ParseDefinition(data)
}

// ParseDefinition parses and validates a YAML budget definition and builds
// the account-to-post inverse index, so reconciliation lookups stay
// constant-time.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse budget definition: %w", err)
	}

	if len(def.Posts) == 0 {
		return nil, fmt.Errorf("budget definition has no posts")
	}

	def.index = make(map[string]Post)
	for _, post := range def.Posts {
		if post.Key == "" || post.Name == "" {
			return nil, fmt.Errorf("budget post %q must have key and name", post.Name)
		}
		if len(post.Accounts) == 0 {
			return nil, fmt.Errorf("budget post %q has no account codes", post.Key)
		}
		if post.Factor != 1 && post.Factor != -1 {
			return nil, fmt.Errorf("budget post %q has invalid factor %d, must be 1 or -1", post.Key, post.Factor)
		}

		for _, code := range post.Accounts {
			if existing, ok := def.index[code]; ok {
				// Code lists are expected to be disjoint; keep the first
				// registration and flag the overlap.
				slog.Warn("account code registered for multiple budget posts",
					"code", code, "kept", existing.Key, "ignored", post.Key)
				continue
			}
			def.index[code] = post
		}
	}

	return &def, nil
}

// LookupPost returns the post an account code belongs to.
func (d *Definition) LookupPost(code string) (Post, bool) {
	post, ok := d.index[code]
	return post, ok
}

// Amount returns the committed amount for a post in a fiscal year. A
// missing year or missing post entry yields zero, not an error.
func (d *Definition) Amount(year, key string) decimal.Decimal {
	amounts, ok := d.Years[year]
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amounts[key])
}
