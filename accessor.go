// Package accessor provides safe, cursor-based access to binary data in
// memory, in files, or in growable write buffers.
//
// An Accessor exposes a window onto its backing bytes and a cursor inside
// that window. Every transfer is bounds-checked against the window, moves
// the cursor, and can be recorded in a coverage log for later gap
// analysis. Read accessors derive cheap zero-copy sub-accessors over
// parts of their window; write accessors grow their buffer on demand and
// can flush it to a file.
package accessor

import (
	"fmt"
	"io"
	"os"

	"github.com/binsect/accessor/coverage"
	"github.com/binsect/accessor/internal/buf"
	"github.com/binsect/accessor/internal/mmfile"
	"github.com/binsect/accessor/pathres"
)

// UntilEnd selects "everything up to the end of the window" wherever a
// size or count parameter accepts it.
const UntilEnd = -1

const (
	kib = 1024
	mib = 1024 * kib

	// Windows at least this large are mmapped instead of read.
	mmapMinWindow = 16 * kib

	// Single read(2) transfers are capped to stay well clear of
	// platform limits on huge reads.
	readChunkLimit = 1024 * mib
)

const host64 = ^uint(0)>>32 != 0

func defaultGranularity() int {
	if host64 {
		return 64 * kib
	}
	return 4 * kib
}

func maxInitialAllocation() int {
	if host64 {
		return 16 * mib
	}
	return 1 * mib
}

// store is the backing byte block shared by a base accessor and everything
// derived from it.
type store struct {
	data       []byte
	fileOffset int64 // file offset of data[0], for RootWindowOffset

	granularity  int
	growable     bool
	mapped       bool
	unmap        func() error
	in           *os.File
	out          *os.File
	flushOnClose bool
}

// Accessor is a window onto backing bytes with a cursor. Base accessors
// own their store; derived accessors share the parent's store and hold a
// reference on the parent. An Accessor is not safe for concurrent use.
type Accessor struct {
	st     *store
	parent *Accessor // nil for base accessors

	baseOffset int // window start within st.data
	windowSize int
	cursor     int
	avail      int

	writable bool
	refs     int
	closed   bool

	order       Endianness
	cursorStack []int
	cov         coverage.Log
}

func newAccessor(st *store, baseOffset, windowSize int) *Accessor {
	return &Accessor{
		st:         st,
		baseOffset: baseOffset,
		windowSize: windowSize,
		avail:      windowSize,
		order:      DefaultEndianness(),
	}
}

// OpenMemory opens a read accessor over a window of caller-supplied
// bytes. The data is not copied; the caller must keep it alive and stable
// for the accessor's lifetime. windowSize may be UntilEnd.
func OpenMemory(data []byte, windowOffset, windowSize int) (*Accessor, error) {
	if windowOffset < 0 || (windowSize < 0 && windowSize != UntilEnd) {
		return nil, ErrInvalidParameter
	}
	if windowOffset > len(data) {
		return nil, ErrBeyondEnd
	}
	if windowSize == UntilEnd {
		windowSize = len(data) - windowOffset
	}
	if _, ok := buf.End(windowOffset, windowSize, len(data)); !ok {
		return nil, ErrBeyondEnd
	}
	st := &store{data: data}
	return newAccessor(st, windowOffset, windowSize), nil
}

// OpenFile opens a read accessor over a window of the file located by
// basePath, path, and opts (see pathres.Resolve; the directory-creation
// options are ignored). Windows of at least 16 KiB are memory-mapped,
// smaller ones are read into memory. windowSize may be UntilEnd.
func OpenFile(basePath, path string, opts pathres.Options, windowOffset, windowSize int) (*Accessor, error) {
	if windowOffset < 0 || (windowSize < 0 && windowSize != UntilEnd) {
		return nil, ErrInvalidParameter
	}
	name, err := pathres.Resolve(basePath, path, opts&^(pathres.CreateDirectory|pathres.CreatePath))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	fi, err := os.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	fileSize := fi.Size()

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	if int64(windowOffset) > fileSize {
		f.Close()
		return nil, ErrBeyondEnd
	}
	if windowSize == UntilEnd {
		rest := fileSize - int64(windowOffset)
		if int64(int(rest)) != rest || int(rest) < 0 {
			f.Close()
			return nil, ErrInvalidParameter
		}
		windowSize = int(rest)
	}
	if int64(windowOffset)+int64(windowSize) > fileSize {
		f.Close()
		return nil, ErrBeyondEnd
	}

	if windowSize >= mmapMinWindow {
		aligned, within := mmfile.Align(int64(windowOffset))
		if data, unmap, merr := mmfile.MapRegion(f.Fd(), aligned, windowSize+within); merr == nil {
			st := &store{
				data:       data,
				fileOffset: aligned,
				mapped:     true,
				unmap:      unmap,
				in:         f,
			}
			return newAccessor(st, within, windowSize), nil
		}
		// Mapping is an optimization; fall through to a plain read.
	}

	data := make([]byte, windowSize)
	for off := 0; off < windowSize; {
		chunk := windowSize - off
		if chunk > readChunkLimit {
			chunk = readChunkLimit
		}
		n, rerr := f.ReadAt(data[off:off+chunk], int64(windowOffset+off))
		if n == 0 {
			f.Close()
			if rerr == nil {
				return nil, ErrHost
			}
			return nil, fmt.Errorf("%w: %w", ErrHost, rerr)
		}
		off += n
	}
	st := &store{data: data, fileOffset: int64(windowOffset), in: f}
	return newAccessor(st, 0, windowSize), nil
}

// newWriteStore builds the zero-filled, growable buffer behind a write
// accessor. granularity 0 selects the platform default; an initial
// allocation above the platform ceiling is clamped to it, and the
// granularity with it.
func newWriteStore(initialAllocation, granularity int) (*store, error) {
	if initialAllocation < 0 || granularity < 0 {
		return nil, ErrInvalidParameter
	}
	if granularity == 0 {
		granularity = defaultGranularity()
	}
	if ceiling := maxInitialAllocation(); initialAllocation > ceiling {
		initialAllocation = ceiling
		granularity = ceiling
	}
	capacity, ok := buf.RoundUp(initialAllocation, granularity)
	if !ok {
		return nil, ErrInvalidParameter
	}
	return &store{
		data:        make([]byte, capacity),
		granularity: granularity,
		growable:    true,
	}, nil
}

// OpenWriteMemory opens a write accessor over a growable in-memory
// buffer. The window starts empty and extends as data is written.
func OpenWriteMemory(initialAllocation, granularity int) (*Accessor, error) {
	st, err := newWriteStore(initialAllocation, granularity)
	if err != nil {
		return nil, err
	}
	a := newAccessor(st, 0, 0)
	a.writable = true
	return a, nil
}

// OpenWriteFile opens a write accessor whose buffer is written to the
// file located by basePath, path, and opts when the accessor is closed.
// The file is created or truncated immediately, with permission perm.
func OpenWriteFile(basePath, path string, opts pathres.Options, perm os.FileMode, initialAllocation, granularity int) (*Accessor, error) {
	st, err := newWriteStore(initialAllocation, granularity)
	if err != nil {
		return nil, err
	}
	name, err := pathres.Resolve(basePath, path, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	st.out = f
	st.flushOnClose = true
	a := newAccessor(st, 0, 0)
	a.writable = true
	return a, nil
}

// DeriveBytes consumes count bytes at the cursor and returns a read-only
// accessor over them, sharing the backing store. The parent's cursor
// advances past the consumed bytes and one coverage record is logged on
// the parent. count may be UntilEnd. Close the derived accessor when
// done; it holds a reference on the parent.
func (a *Accessor) DeriveBytes(count int) (*Accessor, error) {
	if a.writable {
		return nil, ErrInvalidParameter
	}
	switch {
	case count == UntilEnd:
		count = a.avail
	case count < 0:
		return nil, ErrInvalidParameter
	case count > a.avail:
		return nil, ErrBeyondEnd
	}

	child := a.child(a.cursor, count)
	a.cov.Record(a.cursor, count)
	a.cursor += count
	a.avail -= count
	return child, nil
}

// DeriveWindow returns a read-only accessor over an explicit sub-window,
// sharing the backing store. The parent's cursor does not move and no
// coverage is logged. windowSize may be UntilEnd. Close the derived
// accessor when done; it holds a reference on the parent.
func (a *Accessor) DeriveWindow(windowOffset, windowSize int) (*Accessor, error) {
	if a.writable {
		return nil, ErrInvalidParameter
	}
	if windowOffset < 0 || (windowSize < 0 && windowSize != UntilEnd) {
		return nil, ErrInvalidParameter
	}
	if windowOffset > a.windowSize {
		return nil, ErrBeyondEnd
	}
	if windowSize == UntilEnd {
		windowSize = a.windowSize - windowOffset
	}
	if _, ok := buf.End(windowOffset, windowSize, a.windowSize); !ok {
		return nil, ErrBeyondEnd
	}
	return a.child(windowOffset, windowSize), nil
}

func (a *Accessor) child(windowOffset, windowSize int) *Accessor {
	a.refs++
	return &Accessor{
		st:         a.st,
		parent:     a,
		baseOffset: a.baseOffset + windowOffset,
		windowSize: windowSize,
		avail:      windowSize,
		order:      a.order,
	}
}

// Close releases the accessor. While derived accessors are still open,
// Close only drops the handle's share of the reference count. The last
// close of a chain flushes a write-file buffer, unmaps or releases the
// backing store, and closes file descriptors; closing a derived accessor
// also closes its parent's reference.
func (a *Accessor) Close() error {
	if a == nil || a.closed {
		return ErrInvalidParameter
	}
	if a.refs > 0 {
		a.refs--
		return nil
	}
	a.closed = true

	if a.parent != nil {
		return a.parent.Close()
	}

	st := a.st
	var flushErr error
	if st.flushOnClose && st.out != nil {
		if _, err := st.out.Write(st.data[a.baseOffset : a.baseOffset+a.windowSize]); err != nil {
			flushErr = fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	if st.in != nil {
		st.in.Close()
	}
	if st.out != nil {
		st.out.Close()
	}
	if st.mapped && st.unmap != nil {
		_ = st.unmap()
	}
	st.data = nil
	return flushErr
}

// Size returns the window size in bytes.
func (a *Accessor) Size() int {
	return a.windowSize
}

// Cursor returns the cursor position, relative to the window start.
func (a *Accessor) Cursor() int {
	return a.cursor
}

// Available returns the byte count between the cursor and the window end.
func (a *Accessor) Available() int {
	return a.avail
}

// Writable reports whether the accessor accepts writes.
func (a *Accessor) Writable() bool {
	return a.writable
}

// RootWindowOffset returns the offset of the window start within the
// original data source, accumulated through every derivation. For file
// accessors this is a file offset; for memory accessors an offset into
// the supplied block.
func (a *Accessor) RootWindowOffset() int64 {
	return int64(a.baseOffset) + a.st.fileOffset
}

// Endianness returns the accessor's current byte order.
func (a *Accessor) Endianness() Endianness {
	return a.order
}

// SetEndianness changes the accessor's byte order. Derived accessors
// inherit the parent's endianness at derivation time and are unaffected.
func (a *Accessor) SetEndianness(e Endianness) error {
	if !e.valid() {
		return ErrInvalidParameter
	}
	a.order = e
	return nil
}

// PushCursor saves the cursor position on the accessor's cursor stack.
func (a *Accessor) PushCursor() {
	a.cursorStack = append(a.cursorStack, a.cursor)
}

// PopCursor restores the most recently pushed cursor position.
func (a *Accessor) PopCursor() error {
	return a.PopCursors(1)
}

// PopCursors drops n saved positions and restores the cursor to the
// deepest one dropped.
func (a *Accessor) PopCursors(n int) error {
	if n < 0 || n > len(a.cursorStack) {
		return ErrInvalidParameter
	}
	if n == 0 {
		return nil
	}
	target := a.cursorStack[len(a.cursorStack)-n]
	a.cursorStack = a.cursorStack[:len(a.cursorStack)-n]
	_, err := a.Seek(int64(target), io.SeekStart)
	return err
}

// DropCursor discards the most recently pushed cursor position without
// moving the cursor.
func (a *Accessor) DropCursor() error {
	return a.DropCursors(1)
}

// DropCursors discards the n most recently pushed cursor positions
// without moving the cursor.
func (a *Accessor) DropCursors(n int) error {
	if n < 0 || n > len(a.cursorStack) {
		return ErrInvalidParameter
	}
	a.cursorStack = a.cursorStack[:len(a.cursorStack)-n]
	return nil
}

// grow extends the window to newSize bytes, enlarging the backing buffer
// to the next granularity multiple when needed. Only growable stores
// (write accessors) can extend beyond their allocation.
func (a *Accessor) grow(newSize int) error {
	if newSize <= a.windowSize {
		return nil
	}
	st := a.st
	need, ok := buf.Add(a.baseOffset, newSize)
	if !ok {
		return ErrInvalidParameter
	}
	if need > len(st.data) {
		if !st.growable {
			return ErrInvalidParameter
		}
		capacity, ok := buf.RoundUp(need, st.granularity)
		if !ok {
			return ErrInvalidParameter
		}
		grown := make([]byte, capacity)
		copy(grown, st.data)
		st.data = grown
	}
	a.windowSize = newSize
	a.avail = newSize - a.cursor
	return nil
}

// take consumes n bytes at the cursor for reading and returns them as a
// slice into the backing store, valid until the store is released.
func (a *Accessor) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidParameter
	}
	if n > a.avail {
		return nil, ErrBeyondEnd
	}
	p := a.st.data[a.baseOffset+a.cursor:][:n]
	a.cov.Record(a.cursor, n)
	a.cursor += n
	a.avail -= n
	return p, nil
}

// reserve makes room for n bytes at the cursor of a write accessor,
// growing the window as needed, and returns the destination slice.
func (a *Accessor) reserve(n int) ([]byte, error) {
	if !a.writable {
		return nil, ErrReadOnly
	}
	if n < 0 {
		return nil, ErrInvalidParameter
	}
	if n > a.avail {
		end, ok := buf.Add(a.cursor, n)
		if !ok {
			return nil, ErrInvalidParameter
		}
		if err := a.grow(end); err != nil {
			return nil, err
		}
	}
	p := a.st.data[a.baseOffset+a.cursor:][:n]
	a.cursor += n
	a.avail -= n
	return p, nil
}

// remaining returns the window bytes from the cursor to the window end
// without moving the cursor.
func (a *Accessor) remaining() []byte {
	return a.st.data[a.baseOffset+a.cursor:][:a.avail]
}

// WriteToFile writes a sub-window of the accessor's current content to
// the file located by basePath, path, and opts, creating or truncating it
// with permission perm. The cursor does not move. windowSize may be
// UntilEnd.
func (a *Accessor) WriteToFile(basePath, path string, opts pathres.Options, perm os.FileMode, windowOffset, windowSize int) error {
	if windowOffset < 0 || (windowSize < 0 && windowSize != UntilEnd) {
		return ErrInvalidParameter
	}
	if windowOffset > a.windowSize {
		return ErrBeyondEnd
	}
	if windowSize == UntilEnd {
		windowSize = a.windowSize - windowOffset
	}
	if _, ok := buf.End(windowOffset, windowSize, a.windowSize); !ok {
		return ErrBeyondEnd
	}

	name, err := pathres.Resolve(basePath, path, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	_, werr := f.Write(a.st.data[a.baseOffset+windowOffset:][:windowSize])
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("%w: %w", ErrWrite, werr)
	}
	if cerr != nil {
		return fmt.Errorf("%w: %w", ErrWrite, cerr)
	}
	return nil
}

// EnableCoverage turns coverage recording on or off. Recording starts
// disabled; already-recorded spans are kept either way.
func (a *Accessor) EnableCoverage(on bool) {
	a.cov.SetEnabled(on)
}

// CoverageEnabled reports whether coverage recording is enabled,
// regardless of suspension.
func (a *Accessor) CoverageEnabled() bool {
	return a.cov.Enabled()
}

// SuspendCoverage pauses coverage recording until a matching
// ResumeCoverage. Calls nest.
func (a *Accessor) SuspendCoverage() {
	a.cov.Suspend()
}

// ResumeCoverage undoes one SuspendCoverage.
func (a *Accessor) ResumeCoverage() {
	a.cov.Resume()
}

// SetCoverageTags sets the tag pair stamped on subsequently recorded
// coverage spans.
func (a *Accessor) SetCoverageTags(tag uint64, aux any) {
	a.cov.SetTags(tag, aux)
}

// AddCoverageRecord logs an explicit coverage span. force records even
// when coverage is disabled, but never during suspension. Spans that do
// not fit the window are silently ignored. size may be UntilEnd.
func (a *Accessor) AddCoverageRecord(offset, size int, tag uint64, aux any, force bool) {
	if offset < 0 || offset > a.windowSize {
		return
	}
	if size == UntilEnd {
		size = a.windowSize - offset
	}
	if _, ok := buf.End(offset, size, a.windowSize); !ok {
		return
	}
	a.cov.Add(coverage.Record{Offset: offset, Size: size, Tag: tag, Aux: aux}, force)
}

// CoverageRecords returns the coverage log. The slice aliases the log;
// SummarizeCoverage invalidates it.
func (a *Accessor) CoverageRecords() []coverage.Record {
	return a.cov.Records()
}

// SummarizeCoverage sorts and consolidates the coverage log. Nil
// arguments select the default ordering and merge rule (see the coverage
// package).
func (a *Accessor) SummarizeCoverage(cmp coverage.CompareFunc, merge coverage.MergeFunc) {
	a.cov.Summarize(cmp, merge)
}
