package replacement

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LFSR", func() {
	var lfsr *LFSR

	BeforeEach(func() {
		lfsr = NewLFSR()
	})

	It("should produce the known first values from the default seed", func() {
		Expect(lfsr.Next()).To(Equal(uint32(0xd0000001)))
		Expect(lfsr.Next()).To(Equal(uint32(0xb8000001)))
	})

	It("should be deterministic for the same seed", func() {
		other := NewLFSR()
		other.Seed(1)

		for i := 0; i < 1000; i++ {
			Expect(other.Next()).To(Equal(lfsr.Next()))
		}
	})

	It("should never reach the locked all-zero state", func() {
		for i := 0; i < 100000; i++ {
			Expect(lfsr.Next()).NotTo(BeZero())
		}
	})

	It("should reject a zero seed", func() {
		Expect(func() { lfsr.Seed(0) }).To(Panic())
	})

	It("should restart the sequence after reseeding", func() {
		lfsr.Next()
		lfsr.Next()
		lfsr.Seed(1)

		Expect(lfsr.Next()).To(Equal(uint32(0xd0000001)))
	})
})
