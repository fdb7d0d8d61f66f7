package ioformat

import (
	"errors"
	"strings"
	"testing"
)

func TestReadInstanceParsesScenario1(t *testing.T) {
	input := "1 1 1\n1 0 5\n1 0 10\n1 10\n"
	p, err := ReadInstance(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadInstance: %v", err)
	}
	if p.OrderCount() != 1 || p.AisleCount() != 1 || p.ItemCount() != 1 {
		t.Fatalf("unexpected instance shape: %s", p)
	}
	if p.LB() != 1 || p.UB() != 10 {
		t.Errorf("bounds = [%d, %d], want [1, 10]", p.LB(), p.UB())
	}
}

func TestReadInstanceCoalescesDuplicateItemsInALine(t *testing.T) {
	input := "1 1 0\n2 0 2 0 3\n0 0\n"
	p, err := ReadInstance(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadInstance: %v", err)
	}
	lines := p.Order(0)
	if len(lines) != 1 || lines[0].Qty != 5 {
		t.Errorf("expected coalesced line {item:0 qty:5}, got %v", lines)
	}
}

func TestReadInstanceEmptyInstance(t *testing.T) {
	input := "0 0 0\n0 0\n"
	p, err := ReadInstance(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadInstance: %v", err)
	}
	if p.OrderCount() != 0 || p.AisleCount() != 0 || p.ItemCount() != 0 {
		t.Errorf("expected all-zero instance, got %s", p)
	}
}

func TestReadInstanceRejectsTruncatedInput(t *testing.T) {
	input := "2 1 1\n1 0 5\n"
	_, err := ReadInstance(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for truncated input")
	}
	var malformed *ErrMalformedInstance
	if !errors.As(err, &malformed) {
		t.Errorf("expected *ErrMalformedInstance, got %T: %v", err, err)
	}
}

func TestReadInstanceRejectsNonIntegerToken(t *testing.T) {
	input := "oops 1 1\n"
	_, err := ReadInstance(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for a non-integer token")
	}
}

