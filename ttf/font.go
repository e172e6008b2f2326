// Package ttf reads the horizontal metrics of TrueType fonts, enough to
// measure the advance width of a line of text.
package ttf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

type f32 = float32

type i16 = int16

type u16 = uint16
type u32 = uint32

type tag u32

func (t tag) String() string {
	buf := [4]byte{}
	binary.BigEndian.PutUint32(buf[:], uint32(t))
	return string(buf[:])
}

type tableName tag

const (
	TableNameCmap tableName = 0x636d6170 // 'cmap'
	TableNameHead tableName = 0x68656164 // 'head'
	TableNameHhea tableName = 0x68686561 // 'hhea'
	TableNameHmtx tableName = 0x686d7478 // 'hmtx'
	TableNameMaxp tableName = 0x6d617870 // 'maxp'
)

const (
	platformMicrosoft = 3
	platformUnicode   = 0

	codeMsUnicodeBmp = 1
	codeUnicodeBmp   = 3

	cmapFormat4 = 4
)

// ErrTruncated is returned for font files that end inside a table they
// reference.
var ErrTruncated = errors.New("truncated font data")

type fword i16

// Font holds the advance widths of a font, in thousandths of an em.
type Font struct {
	gids [256 * 256]u16

	widths []f32

	// Scale converts font units to thousandths of an em.
	Scale f32

	GlyphCount  u16
	MetricCount u16
}

// GlyphId returns the glyph of char, or 0 (the missing glyph) for runes
// outside the basic multilingual plane.
func (f *Font) GlyphId(char rune) u16 {
	if char < 0 || int(char) >= len(f.gids) {
		return 0
	}
	return f.gids[char]
}

func (f *Font) Scaled(val fword) f32 {
	return f.Scale * f32(val)
}

// Width returns the advance width of gid in thousandths of an em.
func (f *Font) Width(gid u16) f32 {
	if int(gid) >= len(f.widths) {
		return 0
	}
	return f.widths[gid]
}

// Parse reads the metrics of the TrueType font in bytes into font.
func Parse(bytes []byte, font *Font) (err error) {
	parser := Parser{
		font:   font,
		reader: NewReader(bytes),
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTruncated, r)
		}
	}()

	return parser.parse()
}

type Parser struct {
	font   *Font
	reader Reader
}

func (p *Parser) fwordScaled() f32 {
	return f32(p.reader.fword()) * p.font.Scale
}

func (p *Parser) parse() error {
	var err error
	if err = p.reader.parseIndex(); err != nil {
		return err
	}

	if err = p.parseHead(); err != nil {
		return err
	}

	if err = p.parseHhea(); err != nil {
		return err
	}

	p.parseMaxP()

	if err = p.parseCmap(); err != nil {
		return err
	}

	p.parseHmtx()

	return nil
}

// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6cmap.html
func (p *Parser) parseCmap() error {
	p.reader.seekTo(p.reader.Tables.Cmap.Ptr + 2) // Skip version

	subtableCount := p.reader.u16()

	var offset u32
	for i := u16(0); i < subtableCount; i++ {
		platform := p.reader.u16()
		code := p.reader.u16()
		subtable := p.reader.u32()

		if !(platform == platformUnicode && code == codeUnicodeBmp) &&
			!(platform == platformMicrosoft && code == codeMsUnicodeBmp) {
			continue
		}

		format := binary.BigEndian.Uint16(
			p.reader.readAt(p.reader.Tables.Cmap.Ptr+subtable, 2),
		)
		if format == cmapFormat4 {
			offset = subtable
			break
		}
	}
	if offset == 0 {
		return fmt.Errorf(
			"no unicode character map table of format %d found",
			cmapFormat4,
		)
	}

	p.reader.seekTo(p.reader.Tables.Cmap.Ptr + offset + 2) // Skip format

	p.reader.skip(4) // length, language code

	segCount := p.reader.u16() >> 1

	p.reader.skip(6) // Search helper params

	endCodes := make([]u16, segCount)
	startCodes := make([]u16, segCount)
	deltas := make([]u16, segCount)

	for i := range endCodes {
		endCodes[i] = p.reader.u16()
	}

	p.reader.skip(2) // reservedPad

	for i := range startCodes {
		startCodes[i] = p.reader.u16()
	}

	for i := range deltas {
		deltas[i] = p.reader.u16()
	}

	for i := u16(0); i < segCount; i++ {
		posRangeOffset := p.reader.pos
		rangeOffset := p.reader.u16()

		for char := startCodes[i]; char >= startCodes[i]; char += 1 {
			// Delta arithmetic is modulo 0x10000:
			gid := char + deltas[i]
			if rangeOffset != 0 {
				posGlyphIndex := posRangeOffset + u32(rangeOffset) +
					2*(u32(char)-u32(startCodes[i]))
				gid = binary.BigEndian.Uint16(p.reader.readAt(posGlyphIndex, 2))
				if gid != 0 {
					gid += deltas[i]
				}
			}
			p.font.gids[rune(char)] = gid

			// Broken out of loop condition to handle 0xffff-0xffff range:
			if char == endCodes[i] {
				break
			}
		}
	}

	return nil
}

// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6head.html
func (p *Parser) parseHead() error {
	p.reader.seekTo(p.reader.Tables.Head.Ptr + 18)

	unitsPerEm := p.reader.u16()
	if unitsPerEm == 0 {
		return fmt.Errorf(`unitsPerEm == 0 in "head" table`)
	}
	p.font.Scale = 1000.0 / f32(unitsPerEm)

	return nil
}

// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6hhea.html
func (p *Parser) parseHhea() error {
	p.reader.seekTo(p.reader.Tables.Hhea.Ptr + 32)

	if metricDataFormat := p.reader.u16(); metricDataFormat != 0 {
		return fmt.Errorf(
			`invalid metricDataFormat in "hhea" table: %d`,
			metricDataFormat,
		)
	}

	if p.font.MetricCount = p.reader.u16(); p.font.MetricCount == 0 {
		return fmt.Errorf("numOfLongHorMetrics == 0 in hhea table")
	}

	return nil
}

// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6hmtx.html
func (p *Parser) parseHmtx() {
	for gid := u16(0); gid < p.font.GlyphCount; gid++ {
		const stride = 4
		ptr := p.reader.Tables.Hmtx.Ptr + stride*u32(
			min(gid, p.font.MetricCount-1),
		)
		p.reader.seekTo(ptr)
		p.font.widths[gid] = p.fwordScaled()
	}
}

// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6.html
func (r *Reader) parseIndex() error {
	typ := r.u32()

	switch typ {
	case 0x7472_7565: // Four-char code: 'true'
		fallthrough
	case 0x0001_0000: // TrueType identifier
		break
	default:
		return fmt.Errorf("expected TrueType font, got type %x", typ)
	}

	tableCount := r.u16()

	r.skip(6) // searchRange, entrySelector, rangeShift (all u16)

	for i := u16(0); i < tableCount; i++ {
		name := tableName(r.tag())
		var table *Table

		switch name {
		case TableNameCmap:
			table = &r.Tables.Cmap
		case TableNameHead:
			table = &r.Tables.Head
		case TableNameHhea:
			table = &r.Tables.Hhea
		case TableNameHmtx:
			table = &r.Tables.Hmtx
		case TableNameMaxp:
			table = &r.Tables.Maxp

		default:
			r.skip(12) // checksum + position + length (all u32)
			continue
		}

		r.skip(4) // checksum
		*table = Table{
			Ptr: r.u32(),
			Len: r.u32(),
		}
	}

	for _, required := range [...]struct {
		name  tableName
		table *Table
	}{
		{TableNameCmap, &r.Tables.Cmap},
		{TableNameHead, &r.Tables.Head},
		{TableNameHhea, &r.Tables.Hhea},
		{TableNameHmtx, &r.Tables.Hmtx},
		{TableNameMaxp, &r.Tables.Maxp},
	} {
		if required.table.Ptr == 0 {
			return fmt.Errorf("missing required TTF table %q", tag(required.name))
		}
		if required.table.Ptr+required.table.Len > r.Len() {
			return fmt.Errorf("%w: table %q", ErrTruncated, tag(required.name))
		}
	}

	return nil
}

// https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6maxp.html
func (p *Parser) parseMaxP() {
	p.reader.seekTo(p.reader.Tables.Maxp.Ptr + 4) // Skip version.
	p.font.GlyphCount = p.reader.u16()
	p.font.widths = make([]f32, p.font.GlyphCount)
}

type Tables struct {
	Cmap Table
	Head Table
	Hhea Table
	Hmtx Table
	Maxp Table
}

type Table struct {
	Len u32
	Ptr u32
}

func (t *Table) String() string {
	return fmt.Sprintf("0x%x: %d bytes", t.Ptr, t.Len)
}

type Reader struct {
	Tables Tables
	buf    []byte
	pos    u32
}

func NewReader(bytes []byte) Reader {
	return Reader{buf: bytes}
}

func (r *Reader) fword() fword {
	return fword(r.i16())
}

func (r *Reader) i16() i16 {
	return i16(r.u16())
}

func (r Reader) Len() u32 {
	return u32(len(r.buf))
}

func (r *Reader) read(count u32) (bytes []byte) {
	bytes = r.buf[r.pos:][0:count]
	r.pos += count
	return
}

func (r *Reader) readAt(pos u32, count u32) (bytes []byte) {
	bytes = r.buf[pos:][0:count]
	return
}

func (r *Reader) seekTo(pos u32) {
	r.pos = pos
}

func (r *Reader) skip(count u32) {
	r.pos += count
}

func (r *Reader) tag() tag {
	return tag(r.u32())
}

func (r *Reader) u16() u16 {
	return binary.BigEndian.Uint16(r.read(2))
}

func (r *Reader) u32() u32 {
	return binary.BigEndian.Uint32(r.read(4))
}
