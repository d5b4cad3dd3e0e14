package swayabi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// hashOfByte returns a 32-byte value with b in its lowest byte.
func hashOfByte(b byte) common.Hash {
	var h common.Hash
	h[31] = b
	return h
}

func transferFunction() *Function {
	return &Function{
		Name: "transfer",
		Inputs: []Parameter{
			{Name: "to", Type: TypeB256},
			{Name: "amount", Type: TypeU64},
		},
		Outputs: []Parameter{
			{Name: "ok", Type: TypeBool},
		},
	}
}

func TestFunctionSignature(t *testing.T) {
	tests := []struct {
		name string
		fn   *Function
		sig  string
	}{
		{"no params", &Function{Name: "poke"}, "poke()"},
		{"scalars", transferFunction(), "transfer(b256,u64)"},
		{
			"struct expands structurally",
			&Function{
				Name: "move",
				Inputs: []Parameter{
					{Name: "p", Type: StructType("Point",
						Component{Name: "x", Type: TypeU64},
						Component{Name: "y", Type: TypeU64},
					)},
				},
			},
			"move(s(u64,u64))",
		},
		{
			"enum and array forms",
			&Function{
				Name: "set",
				Inputs: []Parameter{
					{Name: "e", Type: EnumType("E",
						Component{Name: "A", Type: TypeU64},
						Component{Name: "B"},
					)},
					{Name: "a", Type: ArrayType(TypeU32, 4)},
					{Name: "s", Type: StringType(5)},
				},
			},
			"set(e(u64,()),a[u32;4],str[5])",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn.Signature(); got != tt.sig {
				t.Errorf("expected %q, got %q", tt.sig, got)
			}
		})
	}
}

func TestSelectorDerivation(t *testing.T) {
	fn := transferFunction()

	t.Run("selector is sha256 prefix of signature", func(t *testing.T) {
		sum := sha256.Sum256([]byte("transfer(b256,u64)"))
		sel := Selector(fn)
		if !bytes.Equal(sel[:], sum[:4]) {
			t.Errorf("expected %x, got %x", sum[:4], sel)
		}
	})

	t.Run("selector word has zero high bytes", func(t *testing.T) {
		word := SelectorWord(Selector(fn))
		if word[0] != 0 || word[1] != 0 || word[2] != 0 || word[3] != 0 {
			t.Errorf("high bytes not zero: %x", word)
		}
		sel := Selector(fn)
		if !bytes.Equal(word[4:], sel[:]) {
			t.Errorf("low bytes %x don't match selector %x", word[4:], sel)
		}
	})

	t.Run("selector is stable across calls", func(t *testing.T) {
		if Selector(fn) != Selector(transferFunction()) {
			t.Error("same signature produced different selectors")
		}
	})

	t.Run("selector depends on name and parameter shapes only", func(t *testing.T) {
		renamed := transferFunction()
		renamed.Name = "transfer2"
		if Selector(fn) == Selector(renamed) {
			t.Error("different names produced the same selector")
		}

		widened := transferFunction()
		widened.Inputs[1].Type = TypeU32
		if Selector(fn) == Selector(widened) {
			t.Error("different parameter types produced the same selector")
		}

		// Parameter names are not part of the signature.
		relabeled := transferFunction()
		relabeled.Inputs[0].Name = "recipient"
		if Selector(fn) != Selector(relabeled) {
			t.Error("parameter rename changed the selector")
		}
	})
}

func TestEncodeFunctionCall(t *testing.T) {
	fn := &Function{
		Name:   "flip",
		Inputs: []Parameter{{Name: "v", Type: TypeBool}},
	}

	encoded, err := EncodeFunctionCall(fn, Bool(true))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("buffer layout", func(t *testing.T) {
		if len(encoded) != 16 {
			t.Fatalf("expected 16 bytes, got %d", len(encoded))
		}
		word := SelectorWord(Selector(fn))
		if !bytes.Equal(encoded[:8], word[:]) {
			t.Errorf("selector word mismatch: %x", encoded[:8])
		}
		if got := hex.EncodeToString(encoded[8:]); got != "0000000000000001" {
			t.Errorf("argument word: expected 0000000000000001, got %s", got)
		}
	})

	t.Run("word aligned", func(t *testing.T) {
		if len(encoded)%WordSize != 0 {
			t.Errorf("length %d not word-aligned", len(encoded))
		}
	})
}

func TestEncodeFunctionCallArgumentErrors(t *testing.T) {
	fn := transferFunction()

	t.Run("wrong argument count", func(t *testing.T) {
		_, err := EncodeFunctionCall(fn, U64(1))
		if !errors.Is(err, ErrArgumentCount) {
			t.Errorf("expected ErrArgumentCount, got %v", err)
		}
		var argErr *ArgumentError
		if !errors.As(err, &argErr) || argErr.Function != "transfer" {
			t.Errorf("expected ArgumentError for transfer, got %v", err)
		}
	})

	t.Run("wrong argument type", func(t *testing.T) {
		_, err := EncodeFunctionCall(fn, U64(1), U64(2))
		var argErr *ArgumentError
		if !errors.As(err, &argErr) || argErr.Index != 0 {
			t.Fatalf("expected ArgumentError at index 0, got %v", err)
		}
	})
}

func TestDecodeFunctionCall(t *testing.T) {
	fn := transferFunction()
	to := B256(hashOfByte(0xaa))
	encoded, err := EncodeFunctionCall(fn, to, U64(500))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("round trip", func(t *testing.T) {
		args, err := DecodeFunctionCall(fn, encoded)
		if err != nil {
			t.Fatal(err)
		}
		if len(args) != 2 {
			t.Fatalf("expected 2 args, got %d", len(args))
		}
		if !Equal(args[0], to) || !Equal(args[1], U64(500)) {
			t.Errorf("decoded args mismatch: %s, %s", args[0], args[1])
		}
	})

	t.Run("selector mismatch", func(t *testing.T) {
		other := &Function{Name: "burn", Inputs: fn.Inputs}
		_, err := DecodeFunctionCall(other, encoded)
		if !errors.Is(err, ErrSelectorMismatch) {
			t.Errorf("expected ErrSelectorMismatch, got %v", err)
		}
	})

	t.Run("buffer shorter than selector word", func(t *testing.T) {
		_, err := DecodeFunctionCall(fn, encoded[:4])
		if !errors.Is(err, ErrTruncatedInput) {
			t.Errorf("expected ErrTruncatedInput, got %v", err)
		}
	})
}

func TestDecodeFunctionResult(t *testing.T) {
	fn := transferFunction()
	data := MustEncode(Bool(true))
	outs, err := DecodeFunctionResult(fn, data)
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 1 || !outs[0].(*BoolValue).Bool() {
		t.Errorf("expected [true], got %v", outs)
	}
}
