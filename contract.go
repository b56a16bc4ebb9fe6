package loom

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// Data is the per-argument-type capability a Client Program supplies to
// MkMfn so the memo table can canonicalize, hash, display, and compare
// memoized arguments. See spec section 6, "Data/Name module contract".
type Data[T any] interface {
	Equal(a, b T) bool
	Hash(seed uint64, a T) uint64
	Show(a T) string
	Sanitize(a T) T
}

// ComparableData is a ready-made Data[T] for any comparable T: equality
// is ==, hashing is FNV-1a over the value's default string form. Client
// Programs whose memoized arguments need normalization (e.g. sorting a
// slice before comparing it) or a cheaper hash should supply their own
// Data instead.
type ComparableData[T comparable] struct{}

func (ComparableData[T]) Equal(a, b T) bool { return a == b }

func (ComparableData[T]) Hash(seed uint64, a T) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	h.Write(buf[:])
	fmt.Fprint(h, a)
	return h.Sum64()
}

func (ComparableData[T]) Show(a T) string { return fmt.Sprint(a) }

func (ComparableData[T]) Sanitize(a T) T { return a }

// Name identifies a nominal memo binding. It is a plain string, so it is
// naturally comparable and hashable — mirroring the teacher's own
// string-backed identity type (higact.Address; src/messages.go's
// `type Address string`).
type Name string

// ForkName deterministically splits n into two distinct, reproducible
// child names, per the Name module contract's `fork`.
func ForkName(n Name) (Name, Name) {
	return n + "/L", n + "/R"
}

// PairName deterministically combines two names into one, per the Name
// module contract's `pair`. The NUL separator keeps Pair("a/b", "c") from
// colliding with Pair("a", "b/c").
func PairName(n, m Name) Name {
	return n + "\x00" + m
}

// GenName mints a fresh, process-wide unique name rooted at base, per the
// Name module contract's `gensym`. Backed by github.com/google/uuid —
// the same library the teacher imports for actor-address generation but
// never turns on (higact.generateAddress's `if false` branch); loom is
// the module that actually exercises it.
func GenName(base string) Name {
	return Name(base + "#" + uuid.NewString())
}

// NondetName mints a name with no reproducible relationship to any other
// name, per the Name module contract's `nondet`. A Client that calls it
// forfeits deterministic replay for whatever subgraph is keyed by the
// result.
func NondetName() Name {
	return Name("nondet#" + uuid.NewString())
}

func hashName(seed uint64, n Name) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	h.Write(buf[:])
	h.Write([]byte(n))
	return h.Sum64()
}
