package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/mem/cache"
)

var _ = Describe("Monitor", func() {
	var m *Monitor

	BeforeEach(func() {
		m = &Monitor{}
	})

	It("should register levels", func() {
		m.RegisterLevel(cache.MakeBuilder().Build("D$"))
		m.RegisterLevel(cache.MakeBuilder().Build("L2$"))

		Expect(m.levels).To(HaveLen(2))
	})

	It("should list the registered levels", func() {
		m.RegisterLevel(cache.MakeBuilder().Build("I$"))
		m.RegisterLevel(cache.MakeBuilder().Build("D$"))

		recorder := httptest.NewRecorder()
		m.listLevels(recorder, nil)

		Expect(recorder.Body.String()).To(Equal(`["I$","D$"]`))
	})

	It("should encode level statistics with the miss rate", func() {
		level := cache.MakeBuilder().WithConfigString("1:1:8").Build("D$")
		level.Access(0, 0x1000, 4, false)
		level.Access(0, 0x1000, 4, false)
		m.RegisterLevel(level)

		rsp := levelStatsRsp{}
		stats := level.Stats()
		rsp.Name = level.Name()
		rsp.Stats = stats
		rsp.MissRate = stats.MissRate()

		encoded, err := json.Marshal(rsp)
		Expect(err).To(BeNil())
		Expect(string(encoded)).To(ContainSubstring(`"miss_rate":50`))
	})

	It("should reject ports below 1000", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(BeZero())
	})
})
