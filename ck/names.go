package ck

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Const is a named constant of a flag family.
type Const struct {
	Name  string
	Value ULong
}

// Family is a group of constants sharing a prefix, such as the CKF bits of
// one structure's flags field. Its lookup tables are built on first use and
// never modified afterwards.
type Family struct {
	Prefix string
	consts []Const
	once   sync.Once
	table  *nameTable
}

type nameTable struct {
	byValue map[ULong]string
	byName  map[string]ULong
	bits    []Const // nonzero single bit constants, ascending
}

// NewFamily declares a family. When two constants share a value, the first
// one names it.
func NewFamily(prefix string, consts ...Const) *Family {
	return &Family{
		Prefix: prefix,
		consts: consts,
	}
}

// Flagged is implemented by structures whose flags field has a family.
type Flagged interface {
	FlagFamily() *Family
}

// Flag families by structure.
var (
	InitializeArgsFlags = NewFamily("CKF",
		Const{"CKF_LIBRARY_CANT_CREATE_OS_THREADS", CKF_LIBRARY_CANT_CREATE_OS_THREADS},
		Const{"CKF_OS_LOCKING_OK", CKF_OS_LOCKING_OK},
	)
	// CK_INFO defines no flags yet.
	InfoFlags = NewFamily("CKF")
)

// I2S names v using the family of s.
func I2S(s Flagged, v ULong) string {
	return s.FlagFamily().I2S(v)
}

// F2S renders flags using the family of s.
func F2S(s Flagged, flags ULong) string {
	return s.FlagFamily().F2S(flags)
}

func (f *Family) lookup() *nameTable {
	f.once.Do(func() {
		t := &nameTable{
			byValue: make(map[ULong]string, len(f.consts)),
			byName:  make(map[string]ULong, len(f.consts)),
		}
		for _, c := range f.consts {
			if _, ok := t.byValue[c.Value]; !ok {
				t.byValue[c.Value] = c.Name
				if c.Value != 0 && c.Value&(c.Value-1) == 0 {
					t.bits = append(t.bits, c)
				}
			}
			t.byName[c.Name] = c.Value
		}
		sort.Slice(t.bits, func(i, j int) bool {
			return t.bits[i].Value < t.bits[j].Value
		})
		f.table = t
	})
	return f.table
}

// Consts returns the declared constants.
func (f *Family) Consts() []Const {
	return append([]Const(nil), f.consts...)
}

// Name returns the name of the constant with value v.
func (f *Family) Name(v ULong) (string, bool) {
	name, ok := f.lookup().byValue[v]
	return name, ok
}

// Value returns the value of the named constant.
func (f *Family) Value(name string) (ULong, bool) {
	v, ok := f.lookup().byName[name]
	return v, ok
}

// I2S returns the name of the constant with value v, or v in hex when there
// is none.
func (f *Family) I2S(v ULong) string {
	if name, ok := f.Name(v); ok {
		return name
	}
	return hex(v)
}

// F2S renders a combination of single bit constants as {A|B|0x...}, in
// ascending bit order, with unknown bits collected in a trailing term.
func (f *Family) F2S(flags ULong) string {
	var sb strings.Builder
	sb.WriteByte('{')
	sep := ""
	rest := flags
	for _, c := range f.lookup().bits {
		if flags&c.Value != 0 {
			sb.WriteString(sep)
			sb.WriteString(c.Name)
			sep = "|"
			rest &^= c.Value
		}
	}
	if rest != 0 {
		sb.WriteString(sep)
		sb.WriteString(hex(rest))
	}
	sb.WriteByte('}')
	return sb.String()
}

// ParseFlags ORs together names of the family and numeric literals
// (decimal or 0x prefixed).
func (f *Family) ParseFlags(terms []string) (ULong, error) {
	var flags ULong
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if v, ok := f.Value(term); ok {
			flags |= v
			continue
		}
		n, err := strconv.ParseUint(term, 0, int(ULongSize*8))
		if err != nil {
			return 0, fmt.Errorf("unknown %s flag %q", f.Prefix, term)
		}
		flags |= ULong(n)
	}
	return flags, nil
}

func hex(v ULong) string {
	return fmt.Sprintf("0x%08x", v)
}
