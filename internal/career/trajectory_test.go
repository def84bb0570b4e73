package career_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/integrators"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

func solve(params career.Params, rng *rand.Rand, x0 sim.State, years float64) *sim.Result {
	GinkgoHelper()

	dyn, err := career.NewSystem(params, rng)
	Expect(err).NotTo(HaveOccurred())

	cfg := sim.DefaultConfig()
	cfg.End = years
	if params.Stochastic {
		// Per-call draws make the embedded error estimate noisy; the tight
		// default tolerance would drive the step size toward the floor.
		cfg.Tolerance = 1e-4
	}

	result, err := sim.New(dyn, integrators.NewRK45()).Run(context.Background(), x0, cfg)
	Expect(err).NotTo(HaveOccurred())
	return result
}

var _ = Describe("career trajectories", func() {
	x0 := sim.State{50000, 0.5, 0.5}

	Describe("the deterministic baseline over a 40-year career", func() {
		var result *sim.Result

		BeforeEach(func() {
			result = solve(career.DefaultParams(), nil, x0, 40)
		})

		It("samples every requested eval time", func() {
			Expect(result.Times).To(HaveLen(1000))
			Expect(result.Times[0]).To(Equal(0.0))
			Expect(result.Times[999]).To(Equal(40.0))
		})

		It("never decreases pay", func() {
			pay := result.Component(career.IPay)
			for i := 1; i < len(pay); i++ {
				Expect(pay[i]).To(BeNumerically(">=", pay[i-1]-1e-6),
					"pay decreased at sample %d", i)
			}
		})

		It("keeps status and research inside [0,1] throughout", func() {
			for _, idx := range []int{career.IStatus, career.IResearch} {
				for i, v := range result.Component(idx) {
					Expect(v).To(BeNumerically(">=", -1e-6), "component %d at sample %d", idx, i)
					Expect(v).To(BeNumerically("<=", 1+1e-6), "component %d at sample %d", idx, i)
				}
			}
		})
	})

	Describe("the pay-ceiling variant", func() {
		It("never pushes pay above the ceiling when starting below it", func() {
			params := career.DefaultParams()
			params.PayCeiling = 500000

			result := solve(params, nil, x0, 120)

			for i, pay := range result.Component(career.IPay) {
				Expect(pay).To(BeNumerically("<=", 500000+1e-6), "sample %d", i)
			}
		})
	})

	Describe("the stochastic variant", func() {
		It("stays inside status and research bounds with seeded draws", func() {
			params := career.DefaultParams()
			params.Stochastic = true
			params.PayCeiling = 500000
			params.StatusLinkedBeta = true

			result := solve(params, rand.New(rand.NewSource(99)), x0, 40)

			for _, idx := range []int{career.IStatus, career.IResearch} {
				for _, v := range result.Component(idx) {
					Expect(v).To(BeNumerically(">=", -1e-3))
					Expect(v).To(BeNumerically("<=", 1+1e-3))
				}
			}
		})

		It("reproduces a trajectory when reusing the same seed", func() {
			params := career.DefaultParams()
			params.Stochastic = true

			a := solve(params, rand.New(rand.NewSource(5)), x0, 10)
			b := solve(params, rand.New(rand.NewSource(5)), x0, 10)

			Expect(a.Final()).To(Equal(b.Final()))
		})
	})
})
