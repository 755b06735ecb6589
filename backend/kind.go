package backend

import "fmt"

// TableKind identifies a table a backend can emit. The values are the
// YYTD_ID_* identifiers a runtime loader uses to recognize tables.
type TableKind int

const (
	KindAccept               = TableKind(0x01)
	KindBase                 = TableKind(0x02)
	KindCheck                = TableKind(0x03)
	KindDefault              = TableKind(0x04)
	KindNulTransition        = TableKind(0x07)
	KindTransition           = TableKind(0x08)
	KindCompressedTransition = TableKind(0x0B)
	KindAcceptList           = TableKind(0x0C)
)

// boundRule tells which number decides the element width of a table.
type boundRule int

const (
	// boundLength sizes a table by its element count.
	boundLength boundRule = iota
	// boundValue sizes a table by the largest value it stores, supplied by the caller.
	boundValue
)

type kindInfo struct {
	token string
	name  string
	tag   string
	lolen string
	bound boundRule
}

var kindInfos = map[TableKind]kindInfo{
	KindTransition: {
		token: "nxt",
		name:  "yy_nxt",
		tag:   "YYTD_ID_NXT",
		lolen: "YY_NXT_LOLEN",
		bound: boundLength,
	},
	KindCheck: {
		token: "chk",
		name:  "yy_chk",
		tag:   "YYTD_ID_CHK",
		lolen: "YY_CHK_LOLEN",
		bound: boundLength,
	},
	KindBase: {
		token: "base",
		name:  "yy_base",
		tag:   "YYTD_ID_BASE",
		lolen: "YY_BASE_LOLEN",
		bound: boundValue,
	},
	KindDefault: {
		token: "def",
		name:  "yy_def",
		tag:   "YYTD_ID_DEF",
		lolen: "YY_DEF_LOLEN",
		bound: boundValue,
	},
	KindAccept: {
		token: "accept",
		name:  "yy_accept",
		tag:   "YYTD_ID_ACCEPT",
		lolen: "YY_ACCEPT_LOLEN",
		bound: boundLength,
	},
	KindAcceptList: {
		token: "acclist",
		name:  "yy_acclist",
		tag:   "YYTD_ID_ACCLIST",
		lolen: "YY_ACCLIST_LOLEN",
		bound: boundLength,
	},
	KindNulTransition: {
		token: "nultrans",
		name:  "yy_NUL_trans",
		tag:   "YYTD_ID_NUL_TRANS",
		lolen: "YY_NUL_TRANS_LOLEN",
		bound: boundValue,
	},
	KindCompressedTransition: {
		token: "transition",
		name:  "yy_transition",
		tag:   "YYTD_ID_TRANSITION",
		lolen: "YY_TRANSITION_LOLEN",
		bound: boundValue,
	},
}

// Kinds returns all table kinds in the order of their identifiers.
func Kinds() []TableKind {
	return []TableKind{
		KindAccept,
		KindBase,
		KindCheck,
		KindDefault,
		KindNulTransition,
		KindTransition,
		KindCompressedTransition,
		KindAcceptList,
	}
}

func ParseTableKind(s string) (TableKind, error) {
	for k, info := range kindInfos {
		if info.token == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown table kind: %v", s)
}

func (k TableKind) info() kindInfo {
	info, ok := kindInfos[k]
	if !ok {
		panic(fmt.Sprintf("unknown table kind: %d", int(k)))
	}
	return info
}

func (k TableKind) String() string {
	info, ok := kindInfos[k]
	if !ok {
		return fmt.Sprintf("TableKind(%d)", int(k))
	}
	return info.token
}

// TableName returns the identifier a table of this kind is declared with.
func (k TableKind) TableName() string {
	return k.info().name
}

// Tag returns the symbolic directory identifier of this kind.
func (k TableKind) Tag() string {
	return k.info().tag
}

// LengthMacro returns the name of the constant holding the table length
// when table generation is disabled.
func (k TableKind) LengthMacro() string {
	return k.info().lolen
}

func (k TableKind) MarshalText() ([]byte, error) {
	if _, ok := kindInfos[k]; !ok {
		return nil, fmt.Errorf("unknown table kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *TableKind) UnmarshalText(text []byte) error {
	kind, err := ParseTableKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
