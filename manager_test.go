package aig

import "testing"

func TestNewManagerHasConst1AtZero(t *testing.T) {
	t.Parallel()
	m := NewManager()
	if m.const1ID != 0 {
		t.Fatalf("const1ID = %d, want 0", m.const1ID)
	}
	o := m.Object(0)
	if o == nil || o.Type != TypeConst1 || !o.Phase {
		t.Fatalf("object 0 = %+v, want live TypeConst1 with Phase=true", o)
	}
	if m.Const1() != (Edge{ID: 0}) {
		t.Fatalf("Const1() = %+v", m.Const1())
	}
	if m.Const0() != (Edge{ID: 0, Compl: true}) {
		t.Fatalf("Const0() = %+v", m.Const0())
	}
}

func TestCreateCIAssignsCioID(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	b := m.CreateCI()
	if m.Object(a.ID).CioID != 0 || m.Object(b.ID).CioID != 1 {
		t.Fatalf("CioID assignment wrong: a=%d b=%d", m.Object(a.ID).CioID, m.Object(b.ID).CioID)
	}
	if m.NumCis() != 2 {
		t.Fatalf("NumCis() = %d, want 2", m.NumCis())
	}
}

func TestCreateCORefsDriver(t *testing.T) {
	t.Parallel()
	m := NewManager()
	a := m.CreateCI()
	m.CreateCO(a)
	if m.Object(a.ID).Refs != 1 {
		t.Fatalf("driver Refs = %d, want 1", m.Object(a.ID).Refs)
	}
}

func TestSetRegNumRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	m := NewManager()
	m.CreateCI()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range register count")
		}
	}()
	m.SetRegNum(5)
}
