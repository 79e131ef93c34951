package postgres

import (
	"testing"
	"time"
)

type agentRow struct {
	tags   []byte
	inputs []byte
}

func (r agentRow) Scan(dest ...interface{}) error {
	*(dest[0].(*string)) = "a1"
	*(dest[1].(*string)) = "Copy"
	*(dest[2].(*string)) = ""
	*(dest[3].(*string)) = "prompt"
	*(dest[4].(*[]byte)) = r.tags
	*(dest[5].(*[]byte)) = r.inputs
	*(dest[6].(*time.Time)) = time.Time{}
	*(dest[7].(*time.Time)) = time.Time{}
	return nil
}

func TestScanAgentDecodesInputs(t *testing.T) {
	agent, err := scanAgent(agentRow{
		tags:   []byte(`["social"]`),
		inputs: []byte(`[{"name":"tema","label":"Tema","placeholder":""}]`),
	})
	if err != nil {
		t.Fatalf("scanAgent returned error: %v", err)
	}
	if len(agent.Inputs) != 1 || agent.Inputs[0].Name != "tema" {
		t.Errorf("inputs not decoded: %+v", agent.Inputs)
	}
	if len(agent.Tags) != 1 || agent.Tags[0] != "social" {
		t.Errorf("tags not normalized: %v", agent.Tags)
	}
}

func TestScanAgentRejectsCorruptInputs(t *testing.T) {
	if _, err := scanAgent(agentRow{inputs: []byte(`{"broken"`)}); err == nil {
		t.Fatal("expected a decode error for corrupt inputs column")
	}
}

func TestScanAgentEmptyInputsYieldsEmptySlice(t *testing.T) {
	agent, err := scanAgent(agentRow{})
	if err != nil {
		t.Fatalf("scanAgent returned error: %v", err)
	}
	if agent.Inputs == nil || len(agent.Inputs) != 0 {
		t.Errorf("expected empty inputs slice, got %#v", agent.Inputs)
	}
}
