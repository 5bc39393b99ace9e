// Package insts provides UFLA-RISC instruction definitions and decoding.
//
// This package implements decoding of 32-bit UFLA-RISC instruction words
// into structured instruction representations. It supports the five
// encoding formats of the architecture:
//   - R-type: three-register ALU operations (ADD, SUB, ZERO, XOR, OR, NOT,
//     AND, SAL, SAR, SLL, SLR, COPY)
//   - I-type: register + 16-bit immediate (LOADH, LOADL, LW, SW)
//   - J-type: 16-bit absolute address (JAL, J)
//   - JR-type: jump to register (JR)
//   - B-type: two registers + 14-bit signed offset (JEQ, JNE)
//
// The all-ones word 0xFFFFFFFF is the HALT sentinel and is recognized
// before any field extraction.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode(0x01104200) // ADD r2, r1, r1
//	fmt.Printf("Op: %v, Ra: %d, Rb: %d, Rc: %d\n", inst.Op, inst.Ra, inst.Rb, inst.Rc)
package insts
