package numeric

import "testing"

func TestConvertIntNoOverflow(t *testing.T) {
	bits, flags, err := Default{}.StringToBinary("42", KindInt, 32)
	if err != nil {
		t.Fatal(err)
	}
	if bits != 42 {
		t.Errorf("bits = %d, want 42", bits)
	}
	if flags != 0 {
		t.Errorf("flags = %x, want 0", flags)
	}
}

func TestConvertIntOverflowInt8(t *testing.T) {
	_, flags, err := Default{}.StringToBinary("200", KindInt, 8)
	if err != nil {
		t.Fatal(err)
	}
	if flags&OverflowInt8 == 0 {
		t.Errorf("expected OverflowInt8 flag for 200 as int8, got %x", flags)
	}
}

func TestConvertIntNegative(t *testing.T) {
	bits, _, err := Default{}.StringToBinary("-1", KindInt, 32)
	if err != nil {
		t.Fatal(err)
	}
	if int32(uint32(bits)) != -1 {
		t.Errorf("bits = %x, want two's-complement -1", bits)
	}
}

func TestConvertFloat(t *testing.T) {
	bits, _, err := Default{}.StringToBinary("1.5", KindFloat, 64)
	if err != nil {
		t.Fatal(err)
	}
	if bits == 0 {
		t.Errorf("expected nonzero bit pattern for 1.5")
	}
}

func TestConvertBadTextErrors(t *testing.T) {
	_, _, err := Default{}.StringToBinary("not-a-number", KindInt, 32)
	if err == nil {
		t.Fatal("expected an error for unparseable integer text")
	}
}
