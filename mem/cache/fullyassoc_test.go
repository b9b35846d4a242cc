package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Fully-Associative Cache", func() {
	var (
		mockCtrl *gomock.Controller
		fa       *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		fa = MakeBuilder().WithConfigString("1:8:8").Build("L2$")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should hold as many lines as it has ways", func() {
		for i := uint64(0); i < 8; i++ {
			fa.Access(0, i*8, 1, false)
		}
		for i := uint64(0); i < 8; i++ {
			fa.Access(0, i*8, 1, false)
		}

		stats := fa.Stats()
		Expect(stats.ReadAccesses).To(Equal(uint64(16)))
		Expect(stats.ReadMisses).To(Equal(uint64(8)))
	})

	It("should evict deterministically once full", func() {
		for i := uint64(0); i < 8; i++ {
			fa.Access(0, i*8, 1, false)
		}

		// The ninth install consumes the first LFSR draw,
		// 0xd0000001 % 8 == 1, so the second-smallest line number
		// is displaced.
		fa.Access(0, 8*8, 1, false)

		fa.Access(0, 0x0, 1, false)
		Expect(fa.Stats().ReadMisses).To(Equal(uint64(9)))

		fa.Access(0, 0x8, 1, false)
		Expect(fa.Stats().ReadMisses).To(Equal(uint64(10)))
	})

	It("should carry the victim's source address in the writeback", func() {
		next := NewMockLevel(mockCtrl)
		fa.SetMissHandler(next)

		next.EXPECT().
			Access(gomock.Any(), gomock.Any(), uint64(8), false).
			Times(9)
		next.EXPECT().Access(uint64(0x5008), uint64(0x8), uint64(8), true)

		for i := uint64(0); i < 8; i++ {
			fa.Access(0x5000+i*8, i*8, 1, true)
		}
		fa.Access(0x5000+8*8, 8*8, 1, true)

		Expect(fa.Stats().Writebacks).To(Equal(uint64(1)))
	})

	It("should keep a dirty line a hit on its tag", func() {
		fa.Access(0, 0x100, 1, true)
		fa.Access(0, 0x104, 1, false)

		stats := fa.Stats()
		Expect(stats.WriteMisses).To(Equal(uint64(1)))
		Expect(stats.ReadMisses).To(BeZero())
	})

	It("should replay identically from the same seed", func() {
		addrs := []uint64{
			0x0, 0x40, 0x80, 0x0, 0xc0, 0x40, 0x100, 0x80, 0x0, 0x140,
			0x180, 0x1c0, 0x200, 0x240, 0x280, 0x0, 0x40,
		}

		run := func() Stats {
			c := MakeBuilder().WithConfigString("1:8:8").Build("L2$")
			for i, a := range addrs {
				c.Access(a, a, 4, i%2 == 0)
			}
			return c.Stats()
		}

		Expect(run()).To(Equal(run()))
	})
})
