package callscript

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestNormalizeVariants(t *testing.T) {
	target := "0x" + repeatHex("aa", 20)
	actions := []Action{
		{Target: target, Payload: ResolvedCall{Method: "mint", Data: []byte{0x40, 0xc1, 0x0f, 0x19}}},
		{Target: target, Payload: HexPayload("0xdeadbeef")},
		{Target: target, Payload: HexPayload("cafe")},
		{Target: target, Payload: RawPayload{0x01, 0x02}},
	}
	records, err := Normalize(actions)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := [][]byte{
		{0x40, 0xc1, 0x0f, 0x19},
		{0xde, 0xad, 0xbe, 0xef},
		{0xca, 0xfe},
		{0x01, 0x02},
	}
	if len(records) != len(want) {
		t.Fatalf("len(records) = %d, want %d", len(records), len(want))
	}
	for i, r := range records {
		if !bytes.Equal(r.Data, want[i]) {
			t.Errorf("record %d data = %x, want %x", i, r.Data, want[i])
		}
		if r.Target != common.HexToAddress(target) {
			t.Errorf("record %d target = %s, want %s", i, r.Target, target)
		}
	}
}

func TestNormalizeEmptyHexPayload(t *testing.T) {
	for _, h := range []HexPayload{"", "0x"} {
		records, err := Normalize([]Action{{Target: repeatHex("11", 20), Payload: h}})
		if err != nil {
			t.Fatalf("Normalize(%q): %v", h, err)
		}
		if len(records[0].Data) != 0 {
			t.Fatalf("Normalize(%q) data = %x, want empty", h, records[0].Data)
		}
	}
}

func TestNormalizeInvalidHex(t *testing.T) {
	tests := []HexPayload{"0xzz", "0xabc", "hello"}
	for _, h := range tests {
		_, err := Normalize([]Action{{Target: repeatHex("11", 20), Payload: h}})
		if !errors.Is(err, ErrInvalidPayloadEncoding) {
			t.Errorf("Normalize(%q) err = %v, want ErrInvalidPayloadEncoding", h, err)
		}
	}
}

func TestNormalizeMissingPayload(t *testing.T) {
	_, err := Normalize([]Action{{Target: repeatHex("11", 20)}})
	if !errors.Is(err, ErrInvalidPayloadEncoding) {
		t.Fatalf("err = %v, want ErrInvalidPayloadEncoding", err)
	}
}

func TestNormalizeStopsAtFirstError(t *testing.T) {
	actions := []Action{
		{Target: repeatHex("11", 20), Payload: RawPayload{0x01}},
		{Target: "0x1234", Payload: RawPayload{0x02}},
	}
	records, err := Normalize(actions)
	if !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("err = %v, want ErrInvalidAddress", err)
	}
	if records != nil {
		t.Fatalf("records = %v, want nil on failure", records)
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		{"0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", false},
		{"0X5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		// case is not a checksum: a flipped letter still decodes
		{"0x5aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea", true},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00", true},
		{"0xgaaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"", true},
	}
	want := common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	for _, tt := range tests {
		addr, err := ParseAddress(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("ParseAddress(%q) err = %v, want ErrInvalidAddress", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAddress(%q): %v", tt.in, err)
			continue
		}
		if addr != want {
			t.Errorf("ParseAddress(%q) = %s, want %s", tt.in, addr, want)
		}
	}
}

func TestResolvedCallBytesUntouched(t *testing.T) {
	// Call-data that happens to look like ASCII hex must not be hex-decoded.
	data := []byte("0xdeadbeef")
	records, err := Normalize([]Action{{Target: repeatHex("22", 20), Payload: ResolvedCall{Data: data}}})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !bytes.Equal(records[0].Data, data) {
		t.Fatalf("data = %q, want %q", records[0].Data, data)
	}
}

func repeatHex(b string, n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += b
	}
	return s
}

func TestNormalizeIgnoresAddressCase(t *testing.T) {
	// Mixed case that is not a valid EIP-55 checksum still names 20 bytes.
	target := "0x5aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	script, err := EncodeActions([]Action{{Target: target, Payload: RawPayload{0x01}}})
	if err != nil {
		t.Fatalf("EncodeActions(%s): %v", target, err)
	}
	want := "00000001" + "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed" + "00000001" + "01"
	if got := hex.EncodeToString(script); got != want {
		t.Fatalf("script = %s, want %s", got, want)
	}
}
