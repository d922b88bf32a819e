package config

import "testing"

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewFromViper(NewEmptyViper())

	if got := cfg.GetLLM().Provider; got != "keyword" {
		t.Errorf("llm.provider: got %q, want keyword", got)
	}

	parser := cfg.GetParser()
	if parser.ScoreThreshold != 0.3 {
		t.Errorf("parser.score_threshold: got %v, want 0.3", parser.ScoreThreshold)
	}
	if parser.CombineRescheduleDelegation {
		t.Error("parser.combine_reschedule_delegation: got true, want false")
	}
	if parser.ThreadOrder != "newest_first" {
		t.Errorf("parser.thread_order: got %q, want newest_first", parser.ThreadOrder)
	}
	if parser.SplitStrategy != "boundary" {
		t.Errorf("parser.split_strategy: got %q, want boundary", parser.SplitStrategy)
	}

	server := cfg.GetServer()
	if server.IntakeType != "smtp" {
		t.Errorf("server.intake_type: got %q, want smtp", server.IntakeType)
	}
	if server.RelayEnabled {
		t.Error("server.relay.enabled: got true, want false")
	}

	if got := cfg.GetStore().Type; got != "memory" {
		t.Errorf("store.type: got %q, want memory", got)
	}
	if _, err := cfg.GetDuration("store.retention"); err != nil {
		t.Errorf("store.retention: not a duration: %v", err)
	}
}

func TestOverrides(t *testing.T) {
	t.Parallel()

	v := NewEmptyViper()
	v.Set("llm.provider", "openai")
	v.Set("parser.score_threshold", 0.5)
	cfg := NewFromViper(v)

	if got := cfg.GetLLM().Provider; got != "openai" {
		t.Errorf("llm.provider: got %q, want openai", got)
	}
	if got := cfg.GetParser().ScoreThreshold; got != 0.5 {
		t.Errorf("parser.score_threshold: got %v, want 0.5", got)
	}
}
