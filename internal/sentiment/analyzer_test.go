package sentiment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarity_Headlines(t *testing.T) {
	a := NewAnalyzer()
	tests := []struct {
		text string
		want string
	}{
		{"Apple unveils stunning new iPhone lineup", Positive},
		{"Investors cheer Microsoft's blockbuster quarter", Positive},
		{"Nvidia delivers amazing results, analysts thrilled", Positive},
		{"Tesla shares slip after disappointing deliveries", Negative},
		{"Bank faces fraud investigation and lawsuit", Negative},
		{"Company schedules annual shareholder meeting", Neutral},
		{"", Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(a.Polarity(tt.text), 0.05))
		})
	}
}

func TestPolarity_Bounded(t *testing.T) {
	a := NewAnalyzer()
	for _, text := range []string{
		"great excellent best win success love happy great excellent best!!!!!!",
		"fraud crash bankruptcy crisis worst terrible scandal fraud crash!!!!",
	} {
		p := a.Polarity(text)
		assert.GreaterOrEqual(t, p, -1.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestPolarity_ModifiersChangeIntensity(t *testing.T) {
	a := NewAnalyzer()
	base := a.Polarity("The results are good")
	assert.Greater(t, base, 0.0)
	assert.Greater(t, a.Polarity("The results are very good"), base)
	assert.Greater(t, a.Polarity("The results are good!"), base)
	assert.Less(t, a.Polarity("The results are not good"), 0.0)
}

func TestPolarity_Deterministic(t *testing.T) {
	a := NewAnalyzer()
	text := "Nvidia rallies on strong demand, but analysts warn of risks"
	assert.Equal(t, a.Polarity(text), a.Polarity(text))
	assert.Equal(t, a.Polarity(text), NewAnalyzer().Polarity(text))
}

func TestPolarity_ConcurrentUse(t *testing.T) {
	a := NewAnalyzer()
	want := a.Polarity("Investors cheer a great quarter")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, a.Polarity("Investors cheer a great quarter"))
		}()
	}
	wg.Wait()
}

func TestClassify_Boundaries(t *testing.T) {
	assert.Equal(t, Neutral, Classify(0.05, 0.05))
	assert.Equal(t, Neutral, Classify(-0.05, 0.05))
	assert.Equal(t, Positive, Classify(0.0501, 0.05))
	assert.Equal(t, Negative, Classify(-0.0501, 0.05))
}
