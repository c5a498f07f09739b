package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"starsystem/internal/body"
	"starsystem/internal/snapshot"
)

// Agent asks an LLM for one new celestial-body record per prompt and appends
// it to the snapshot file. The engine picks the change up through its file
// watcher, so the agent never touches engine state directly.
type Agent struct {
	client   Client
	getModel func() string
	path     string

	mu sync.Mutex // serializes read-modify-write of the snapshot file
}

// New returns an Agent writing to the snapshot file at path. getModel is read
// per request so the console's "model" command takes effect immediately.
func New(client Client, getModel func() string, path string) *Agent {
	return &Agent{client: client, getModel: getModel, path: path}
}

// Discover sends the prompt to the LLM, parses the returned record, and
// appends it to the snapshot file. Returns a short summary for the terminal
// log, or an error.
func (a *Agent) Discover(ctx context.Context, prompt string) (summary string, err error) {
	model := a.getModel()
	if model == "" {
		model = "gpt-4o-mini"
	}
	reply, err := a.client.Complete(ctx, model, systemPrompt, prompt)
	if err != nil {
		return "", err
	}
	rec, err := ParseRecord(reply)
	if err != nil {
		return "", fmt.Errorf("LLM response invalid: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	records, err := snapshot.Load(a.path)
	if err != nil {
		return "", err
	}
	for _, existing := range records {
		if existing.ID == rec.ID {
			rec.ID = uniqueID(rec.ID, records)
			break
		}
	}
	records = append(records, rec)
	if err := snapshot.Save(a.path, records); err != nil {
		return "", err
	}
	return fmt.Sprintf("Discovered %s (%s).", rec.Name, rec.Class), nil
}

const systemPrompt = "You are an astronomical survey. The user describes a celestial body in natural language; " +
	"you reply with exactly one JSON object and nothing else. No markdown, no code block, no explanation.\n\n" +
	"Schema:\n" +
	"{\"id\":\"short-kebab-case\",\"name\":\"Display Name\",\"class\":\"rocky|ice|gas giant|gas dwarf|lava\"," +
	"\"visual\":{\"primary\":\"#rrggbb\",\"secondary\":\"#rrggbb\",\"atmosphere\":\"#rrggbb\",\"rings\":true|false}}\n\n" +
	"Rules:\n" +
	"- id must be unique-looking and derived from the name (e.g. \"kepler-veil\").\n" +
	"- primary and secondary are the surface gradient endpoints; pick colors that match the description.\n" +
	"- atmosphere is the rim glow color; for airless bodies use a dim near-black like #101018.\n" +
	"- rings true only when the description calls for them.\n" +
	"- Reply with only the JSON object."

// ParseRecord extracts a body record from the LLM reply. Tolerates markdown
// fences and surrounding prose.
func ParseRecord(reply string) (body.Record, error) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = regexp.MustCompile("^```\\w*\\n?").ReplaceAllString(reply, "")
		reply = strings.TrimSuffix(reply, "```")
		reply = strings.TrimSpace(reply)
	}
	start := strings.Index(reply, "{")
	if start < 0 {
		return body.Record{}, fmt.Errorf("no JSON object in response")
	}
	reply = reply[start:]
	depth := 0
	end := -1
	for i, c := range reply {
		if c == '{' {
			depth++
		} else if c == '}' {
			depth--
			if depth == 0 {
				end = i + 1
				break
			}
		}
	}
	if end < 0 {
		return body.Record{}, fmt.Errorf("unbalanced JSON braces")
	}

	var rec body.Record
	if err := json.Unmarshal([]byte(reply[:end]), &rec); err != nil {
		return body.Record{}, err
	}
	rec.ID = strings.TrimSpace(rec.ID)
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.ID == "" {
		return body.Record{}, fmt.Errorf("record missing id")
	}
	if rec.Name == "" {
		rec.Name = rec.ID
	}
	if rec.Class == "" {
		rec.Class = "rocky"
	}
	return rec, nil
}

func uniqueID(base string, records []body.Record) string {
	taken := make(map[string]bool, len(records))
	for _, r := range records {
		taken[r.ID] = true
	}
	for i := 2; ; i++ {
		id := fmt.Sprintf("%s-%d", base, i)
		if !taken[id] {
			return id
		}
	}
}
