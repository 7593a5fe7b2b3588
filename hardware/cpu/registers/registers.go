// SPDX-License-Identifier: GPL-3.0-or-later

// Package registers implements the ARMv4T register file: 16 logical
// registers, banked per privileged mode, plus CPSR and the per-mode SPSR
// bank. It stores only the bank differences
// rather than a full 16-register shadow per mode, and resolves reads/writes
// through the current mode on every access.
package registers

// Mode is the processor mode encoded in CPSR bits 0-4.
type Mode uint32

// The seven legal ARMv4T processor modes.
const (
	User       Mode = 0b10000
	FIQ        Mode = 0b10001
	IRQ        Mode = 0b10010
	Supervisor Mode = 0b10011
	Abort      Mode = 0b10111
	Undefined  Mode = 0b11011
	System     Mode = 0b11111
)

// Valid reports whether m is one of the seven legal mode encodings.
func (m Mode) Valid() bool {
	switch m {
	case User, FIQ, IRQ, Supervisor, Abort, Undefined, System:
		return true
	}
	return false
}

// HasSPSR reports whether m is a privileged mode with its own SPSR. User and
// System have none.
func (m Mode) HasSPSR() bool {
	switch m {
	case User, System:
		return false
	}
	return true
}

func (m Mode) String() string {
	switch m {
	case User:
		return "usr"
	case FIQ:
		return "fiq"
	case IRQ:
		return "irq"
	case Supervisor:
		return "svc"
	case Abort:
		return "abt"
	case Undefined:
		return "und"
	case System:
		return "sys"
	default:
		return "???"
	}
}

// File is the ARM register file: r0-r15 plus the FIQ/SVC/ABT/IRQ/UND banks
// for r8-r14 (FIQ only for r8-r12) and the five privileged-mode SPSRs.
type File struct {
	// sysUser holds r0-r15 as seen in User/System mode. Every mode shares
	// r0-r7 and r15 through this array; only r8-r14 are ever redirected to
	// a bank below.
	sysUser [16]uint32

	fiq [7]uint32 // r8_fiq .. r14_fiq
	svc [2]uint32 // r13_svc, r14_svc
	abt [2]uint32 // r13_abt, r14_abt
	irq [2]uint32 // r13_irq, r14_irq
	und [2]uint32 // r13_und, r14_und

	cpsr uint32

	spsrSVC uint32
	spsrABT uint32
	spsrUND uint32
	spsrIRQ uint32
	spsrFIQ uint32
}

// New returns a register file with CPSR set to User mode, ARM state, all
// other fields zero.
func New() *File {
	f := &File{}
	f.cpsr = uint32(User)
	return f
}

// Get returns register r as seen from mode. For r in {0..7, 15} this is
// always the shared sys/user register. For r in {8..12} it is FIQ-banked in
// FIQ mode, shared otherwise. For r in {13, 14} it is the bank belonging to
// the current privileged mode, falling back to sys/user in User/System.
func (f *File) Get(r uint32, mode Mode) uint32 {
	switch {
	case r <= 7 || r == 15:
		return f.sysUser[r]
	case r >= 8 && r <= 12:
		if mode == FIQ {
			return f.fiq[r-8]
		}
		return f.sysUser[r]
	case r == 13 || r == 14:
		bank := f.bank(mode)
		if bank == nil {
			return f.sysUser[r]
		}
		return bank[r-13]
	default:
		panic("register index out of range")
	}
}

// Set writes register r as seen from mode, following the same resolution
// rules as Get.
func (f *File) Set(r uint32, mode Mode, value uint32) {
	switch {
	case r <= 7 || r == 15:
		f.sysUser[r] = value
	case r >= 8 && r <= 12:
		if mode == FIQ {
			f.fiq[r-8] = value
		} else {
			f.sysUser[r] = value
		}
	case r == 13 || r == 14:
		bank := f.bank(mode)
		if bank == nil {
			f.sysUser[r] = value
		} else {
			bank[r-13] = value
		}
	default:
		panic("register index out of range")
	}
}

// bank returns the r13/r14 bank for mode (for FIQ, fiq[5:7]), or nil if
// mode shares the sys/user bank (User, System).
func (f *File) bank(mode Mode) []uint32 {
	switch mode {
	case FIQ:
		return f.fiq[5:7]
	case Supervisor:
		return f.svc[:]
	case Abort:
		return f.abt[:]
	case IRQ:
		return f.irq[:]
	case Undefined:
		return f.und[:]
	default:
		return nil
	}
}

// PC returns the raw stored program counter value, with no pipeline
// adjustment. Pipeline-aware reads are the caller's responsibility.
func (f *File) PC() uint32 {
	return f.sysUser[15]
}

// SetPC sets the raw stored program counter value.
func (f *File) SetPC(value uint32) {
	f.sysUser[15] = value
}

// CPSR returns the current program status register.
func (f *File) CPSR() uint32 {
	return f.cpsr
}

// SetCPSR overwrites the current program status register.
func (f *File) SetCPSR(value uint32) {
	f.cpsr = value
}

// CurrentMode returns the mode encoded in the CPSR's low 5 bits.
func (f *File) CurrentMode() Mode {
	return Mode(f.cpsr & 0x1f)
}

// SPSR returns the saved program status register for mode. In User/System,
// which have no SPSR, this returns the CPSR.
func (f *File) SPSR(mode Mode) uint32 {
	switch mode {
	case Supervisor:
		return f.spsrSVC
	case Abort:
		return f.spsrABT
	case Undefined:
		return f.spsrUND
	case IRQ:
		return f.spsrIRQ
	case FIQ:
		return f.spsrFIQ
	default:
		return f.cpsr
	}
}

// SetSPSR writes the saved program status register for mode. Writes in
// User/System mode are unpredictable; they are accepted but
// discarded since there is no SPSR storage to receive them.
func (f *File) SetSPSR(mode Mode, value uint32) {
	switch mode {
	case Supervisor:
		f.spsrSVC = value
	case Abort:
		f.spsrABT = value
	case Undefined:
		f.spsrUND = value
	case IRQ:
		f.spsrIRQ = value
	case FIQ:
		f.spsrFIQ = value
	}
}

// Snapshot is a read-only copy of every register in every mode, used by
// inspection tooling.
type Snapshot struct {
	ByMode map[Mode][16]uint32
	CPSR   uint32
	SPSR   map[Mode]uint32
}

// Snapshot captures every register as seen from every mode, and every SPSR.
func (f *File) Snapshot() Snapshot {
	modes := []Mode{User, FIQ, IRQ, Supervisor, Abort, Undefined, System}

	s := Snapshot{
		ByMode: make(map[Mode][16]uint32, len(modes)),
		CPSR:   f.cpsr,
		SPSR:   make(map[Mode]uint32),
	}

	for _, m := range modes {
		var regs [16]uint32
		for r := uint32(0); r < 16; r++ {
			regs[r] = f.Get(r, m)
		}
		s.ByMode[m] = regs
		if m.HasSPSR() {
			s.SPSR[m] = f.SPSR(m)
		}
	}

	return s
}
