package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/uflarisc/insts"
)

var _ = Describe("Encoder", func() {
	var (
		encoder *insts.Encoder
		decoder *insts.Decoder
	)

	BeforeEach(func() {
		encoder = insts.NewEncoder()
		decoder = insts.NewDecoder()
	})

	Describe("Round trips", func() {
		roundTrip := func(inst *insts.Instruction) {
			word, err := encoder.Encode(inst)
			Expect(err).NotTo(HaveOccurred())

			decoded, err := decoder.Decode(word)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal(inst))
		}

		It("should round-trip R-type instructions", func() {
			roundTrip(&insts.Instruction{
				Op: insts.OpADD, Format: insts.FormatR,
				Ra: 2, Rb: 1, Rc: 1,
			})
			roundTrip(&insts.Instruction{
				Op: insts.OpSLR, Format: insts.FormatR,
				Ra: 31, Rb: 0, Rc: 30,
			})
		})

		It("should round-trip I-type instructions", func() {
			roundTrip(&insts.Instruction{
				Op: insts.OpLOADH, Format: insts.FormatI,
				Ra: 6, Imm: 0xFFFF,
			})
			roundTrip(&insts.Instruction{
				Op: insts.OpSW, Format: insts.FormatI,
				Ra: 7, Imm: 0,
			})
		})

		It("should round-trip J-type instructions", func() {
			roundTrip(&insts.Instruction{
				Op: insts.OpJAL, Format: insts.FormatJ, Addr: 100,
			})
			roundTrip(&insts.Instruction{
				Op: insts.OpJ, Format: insts.FormatJ, Addr: 65535,
			})
		})

		It("should round-trip JR-type instructions", func() {
			roundTrip(&insts.Instruction{
				Op: insts.OpJR, Format: insts.FormatJR, Rc: 9,
			})
		})

		It("should round-trip B-type instructions across the offset range", func() {
			for _, offset := range []int32{-8192, -1, 0, 1, 8191} {
				roundTrip(&insts.Instruction{
					Op: insts.OpJEQ, Format: insts.FormatB,
					Ra: 1, Rb: 2, Offset: offset,
				})
			}
		})

		It("should round-trip HALT", func() {
			word, err := encoder.Encode(&insts.Instruction{Format: insts.FormatHALT})
			Expect(err).NotTo(HaveOccurred())
			Expect(word).To(Equal(insts.HaltWord))
		})
	})

	Describe("Validation", func() {
		It("should reject register indices above 31", func() {
			_, err := encoder.Encode(&insts.Instruction{
				Op: insts.OpADD, Format: insts.FormatR, Ra: 32,
			})
			Expect(err).To(MatchError(insts.ErrBadRegister))
		})

		It("should reject offsets outside the 14-bit signed range", func() {
			_, err := encoder.Encode(&insts.Instruction{
				Op: insts.OpJNE, Format: insts.FormatB, Offset: 8192,
			})
			Expect(err).To(MatchError(insts.ErrBadOffset))

			_, err = encoder.Encode(&insts.Instruction{
				Op: insts.OpJNE, Format: insts.FormatB, Offset: -8193,
			})
			Expect(err).To(MatchError(insts.ErrBadOffset))
		})

		It("should reject an opcode/format mismatch", func() {
			_, err := encoder.Encode(&insts.Instruction{
				Op: insts.OpADD, Format: insts.FormatJ,
			})
			Expect(err).To(MatchError(insts.ErrBadFormat))
		})
	})
})

var _ = Describe("Opcode tables", func() {
	It("should classify the twelve ALU opcodes as R-type", func() {
		aluOps := []insts.Opcode{
			insts.OpADD, insts.OpSUB, insts.OpZERO, insts.OpXOR,
			insts.OpOR, insts.OpNOT, insts.OpAND, insts.OpSAL,
			insts.OpSAR, insts.OpSLL, insts.OpSLR, insts.OpCOPY,
		}
		for _, op := range aluOps {
			Expect(op.IsALU()).To(BeTrue(), "opcode %v", op)
			Expect(op.Format()).To(Equal(insts.FormatR))
		}
	})

	It("should keep the branch, jump, and memory sets disjoint", func() {
		Expect(insts.OpJEQ.IsBranch()).To(BeTrue())
		Expect(insts.OpJNE.IsBranch()).To(BeTrue())
		Expect(insts.OpJAL.IsJump()).To(BeTrue())
		Expect(insts.OpJR.IsJump()).To(BeTrue())
		Expect(insts.OpJ.IsJump()).To(BeTrue())
		Expect(insts.OpLW.IsMemory()).To(BeTrue())
		Expect(insts.OpSW.IsMemory()).To(BeTrue())

		for _, op := range []insts.Opcode{insts.OpJEQ, insts.OpJNE} {
			Expect(op.IsJump()).To(BeFalse())
			Expect(op.IsALU()).To(BeFalse())
		}
		Expect(insts.OpLW.IsALU()).To(BeFalse())
	})

	It("should format mnemonics for disassembly", func() {
		inst := &insts.Instruction{
			Op: insts.OpADD, Format: insts.FormatR, Ra: 2, Rb: 1, Rc: 1,
		}
		Expect(inst.String()).To(Equal("ADD r2, r1, r1"))

		branch := &insts.Instruction{
			Op: insts.OpJEQ, Format: insts.FormatB, Ra: 1, Rb: 2, Offset: -1,
		}
		Expect(branch.String()).To(Equal("JEQ r1, r2, -1"))

		halt := &insts.Instruction{Format: insts.FormatHALT}
		Expect(halt.String()).To(Equal("HALT"))
	})
})
