// Package provider maps personas and fixed system roles to concrete
// backing provider ids, and formats provider ids for display.
package provider

import (
	"strings"

	"github.com/lorenzotomasdiez/debate-arena/internal/persona"
	"github.com/lorenzotomasdiez/debate-arena/internal/seed"
)

// DefaultProviderID is the fallback when no archetype candidates exist.
const DefaultProviderID = "openai/gpt-4o-mini"

// Candidate provider ids per archetype. Order matters: resolution
// indexes into the list by hash.
var archetypeCandidates = map[persona.Archetype][]string{
	persona.Logic:    {"openai/gpt-4o", "mistralai/mistral-large", "openai/gpt-4o-mini"},
	persona.Creative: {"anthropic/claude-3.5-sonnet", "google/gemini-pro-1.5"},
	persona.Raw:      {"x-ai/grok-beta", "meta-llama/llama-3.1-405b-instruct"},
}

// Fixed system roles not tied to a persona.
var roleProviders = map[string]string{
	"Moderator":         "anthropic/claude-3.5-sonnet",
	"Final Synthesizer": "openai/gpt-4o",
	"Synthesizer":       "openai/gpt-4o",
	"Skeptic":           "google/gemini-pro-1.5",
}

var orgDisplayNames = map[string]string{
	"openai":    "GPT",
	"anthropic": "Claude",
	"mistralai": "Mistral",
	"google":    "Gemini",
}

// ResolveForPersona returns the provider id backing a persona for one
// session. The choice is deterministic and stable per (session, persona)
// pair, independent of call order.
func ResolveForPersona(p persona.Persona, sessionID string) string {
	candidates := archetypeCandidates[p.Archetype]
	if len(candidates) == 0 {
		return DefaultProviderID
	}
	h := seed.Hash(sessionID + ":" + p.ID + ":" + string(p.Archetype))
	return candidates[int(h%uint32(len(candidates)))]
}

// ResolveForRole returns the provider id for a fixed system role.
func ResolveForRole(role string) string {
	if id, ok := roleProviders[role]; ok {
		return id
	}
	return DefaultProviderID
}

// DisplayLabel formats a provider id ("org/model-name") into a human
// string. The org prefix is added only when the model text does not
// already start with it, so "anthropic/claude-3.5-sonnet" becomes
// "Claude 3.5 Sonnet" rather than "Claude Claude 3.5 Sonnet".
func DisplayLabel(providerID string) string {
	org, model, ok := strings.Cut(providerID, "/")
	if !ok || model == "" {
		return "Unknown"
	}

	name := titleCase(strings.ReplaceAll(model, "-", " "))
	orgName := orgDisplayNames[org]
	if orgName == "" {
		orgName = org
	}
	if strings.HasPrefix(name, orgName) {
		return name
	}
	return orgName + " " + name
}

// AgentLabel combines a persona name with its backing provider for
// roster display.
func AgentLabel(name, providerID string) string {
	return name + " (" + DisplayLabel(providerID) + ")"
}

// RoleDisplayLabel formats the display label for a fixed system role.
func RoleDisplayLabel(role string) string {
	return DisplayLabel(ResolveForRole(role))
}

func titleCase(s string) string {
	var b strings.Builder
	prevSpace := true
	for _, r := range s {
		if prevSpace && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		prevSpace = r == ' '
		b.WriteRune(r)
	}
	return b.String()
}
