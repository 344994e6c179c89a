package fontdec

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// NameID identifies an entry of a font's naming table.
type NameID uint16

// Name IDs we use
const (
	NameFamily     NameID = 1
	NameSubfamily  NameID = 2
	NameFullName   NameID = 4
	NameVersion    NameID = 5
	NameTypoFamily NameID = 16
)

// nameTable holds the decoded strings of table 'name'.
type nameTable map[NameID]string

// nameRecordRank ranks name records: English Windows names first, then other
// Windows names, Unicode platform names and finally Macintosh Roman names.
func nameRecordRank(pid, psid, lang uint16) int {
	switch pid {
	case 3:
		if psid != 1 && psid != 10 && psid != 0 {
			return 0
		}
		if lang == 0x409 {
			return 4
		}
		return 3
	case 0:
		return 2
	case 1:
		if psid == 0 {
			return 1
		}
	}
	return 0
}

func nameDecoder(pid uint16) *encoding.Decoder {
	if pid == 1 {
		return charmap.Macintosh.NewDecoder()
	}
	return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
}

// parseNames decodes the best available string for each name ID of table 'name'.
func parseNames(b binarySegm, ic *issueCollector) (nameTable, error) {
	n, err := b.u16(2)
	if err != nil {
		return nil, err
	}
	strOffset, err := b.u16(4)
	if err != nil {
		return nil, err
	}
	strbuf, err := b.from(int(strOffset))
	if err != nil {
		return nil, fmt.Errorf("string offset %d exceeds table size %d", strOffset, len(b))
	}
	recs, err := b.view(6, 12*int(n))
	if err != nil {
		return nil, fmt.Errorf("name records: %w", err)
	}
	tracer().Debugf("name table has %d strings, starting at %d", n, strOffset)
	names := make(nameTable)
	ranks := make(map[NameID]int)
	for r := recs; len(r) > 0; r = r[12:] {
		pid, psid, lang := u16(r), u16(r[2:]), u16(r[4:])
		id := NameID(u16(r[6:]))
		rank := nameRecordRank(pid, psid, lang)
		if rank <= ranks[id] {
			continue
		}
		raw, err := strbuf.view(int(u16(r[10:])), int(u16(r[8:])))
		if err != nil {
			ic.add(T("name"), "NameRecord", SeverityMinor, "string for name %d out of bounds", id)
			continue
		}
		s, err := nameDecoder(pid).Bytes(raw)
		if err != nil {
			ic.add(T("name"), "NameRecord", SeverityMinor, "cannot decode name %d: %v", id, err)
			continue
		}
		names[id] = string(s)
		ranks[id] = rank
	}
	return names, nil
}

// --- head and fvar ---------------------------------------------------------

// headInfo holds the fields of table 'head' we use.
type headInfo struct {
	fontRevision           uint32 // 16.16 fixed
	unitsPerEm             uint16
	xMin, yMin, xMax, yMax int16
}

func parseHead(b binarySegm) (headInfo, error) {
	if len(b) < 54 {
		return headInfo{}, fmt.Errorf("head table too short: %d bytes", len(b))
	}
	h := headInfo{
		fontRevision: u32(b[4:]),
		unitsPerEm:   u16(b[18:]),
		xMin:         int16(u16(b[36:])),
		yMin:         int16(u16(b[38:])),
		xMax:         int16(u16(b[40:])),
		yMax:         int16(u16(b[42:])),
	}
	return h, nil
}

// revision formats the font revision of table 'head', e.g. "1.002".
func (h headInfo) revision() string {
	return fmt.Sprintf("%.3f", float64(h.fontRevision)/65536)
}

// variationAxes returns the number of axes of a variable font's 'fvar' table.
func variationAxes(b binarySegm) (int, error) {
	n, err := b.u16(8)
	return int(n), err
}
