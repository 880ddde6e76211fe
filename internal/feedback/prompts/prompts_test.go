package prompts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leetcoach/internal/feedback"
	"leetcoach/internal/feedback/prompts"
	qmodels "leetcoach/internal/question/models"
)

var twoSum = &qmodels.Question{
	ID:          1,
	Title:       "Two Sum",
	Description: "Return indices of the two numbers that add up to target.",
	Examples:    []qmodels.Example{{Input: "nums = [2,7,11,15], target = 9", Output: "[0,1]"}},
	Constraints: []string{"2 <= nums.length <= 10^4", "Only one valid answer exists."},
}

func TestClarify(t *testing.T) {
	p := prompts.Clarify(twoSum, "Can the array contain negatives?")

	assert.Equal(t, feedback.KindClarify, p.Kind)
	assert.Contains(t, p.Text, "Problem: Two Sum")
	assert.Contains(t, p.Text, "Input: nums = [2,7,11,15], target = 9 | Output: [0,1]")
	assert.Contains(t, p.Text, "Only one valid answer exists.")
	assert.Contains(t, p.Text, "Candidate's question: Can the array contain negatives?")
	assert.Contains(t, p.Text, "under 100 words")
}

func TestBruteForce(t *testing.T) {
	t.Run("includes complexities verbatim", func(t *testing.T) {
		p := prompts.BruteForce(twoSum, prompts.Stage{Idea: "use nested loops", TimeComplexity: "O(n^2)", SpaceComplexity: "O(1)"})

		assert.Equal(t, feedback.KindBruteForce, p.Kind)
		assert.Contains(t, p.Text, "Approach: use nested loops")
		assert.Contains(t, p.Text, "Time: O(n^2)")
		assert.Contains(t, p.Text, "Space: O(1)")
	})

	t.Run("missing complexities are marked", func(t *testing.T) {
		p := prompts.BruteForce(twoSum, prompts.Stage{Idea: "try all pairs"})

		assert.Contains(t, p.Text, "Time: Not provided")
		assert.Contains(t, p.Text, "Space: Not provided")
	})
}

func TestOptimize(t *testing.T) {
	t.Run("feeds the previous brute force idea", func(t *testing.T) {
		p := prompts.Optimize(twoSum, prompts.Stage{Idea: "hash map of complements", TimeComplexity: "O(n)"}, "use nested loops")

		assert.Equal(t, feedback.KindOptimize, p.Kind)
		assert.Contains(t, p.Text, "Optimization: hash map of complements")
		assert.Contains(t, p.Text, "Previous brute-force: use nested loops")
	})

	t.Run("omits brute force line when absent", func(t *testing.T) {
		p := prompts.Optimize(twoSum, prompts.Stage{Idea: "sort and two pointers"}, "")

		assert.NotContains(t, p.Text, "Previous brute-force")
	})
}

func TestReview(t *testing.T) {
	p := prompts.Review(twoSum, prompts.ReviewContext{
		Clarification: "Are values unique?",
		BruteForce:    prompts.Stage{Idea: "use nested loops", TimeComplexity: "O(n^2)", SpaceComplexity: "O(1)"},
		Optimize:      prompts.Stage{Idea: "hash map", TimeComplexity: "O(n)", SpaceComplexity: "O(n)"},
		Code:          "def two_sum(nums, target):\n    return []",
		Language:      "python",
	})

	assert.Equal(t, feedback.KindReview, p.Kind)
	assert.Contains(t, p.Text, "Review python code for: Two Sum")
	assert.Contains(t, p.Text, "Clarification: Are values unique?")
	assert.Contains(t, p.Text, "Brute-force: use nested loops")
	assert.Contains(t, p.Text, "Time: O(n^2)")
	assert.Contains(t, p.Text, "Space: O(1)")
	assert.Contains(t, p.Text, "Optimization: hash map")
	assert.Contains(t, p.Text, "Time: O(n)")
	assert.Contains(t, p.Text, "1: def two_sum(nums, target):\n2:     return []")
	assert.Contains(t, p.Text, `"key_pointers"`)
}

func TestSolutionAndFunctionDefinition(t *testing.T) {
	sol := prompts.Solution(twoSum, "go")
	assert.Equal(t, feedback.KindSolution, sol.Kind)
	assert.Contains(t, sol.Text, "Generate optimal go solution for: Two Sum")

	def := prompts.FunctionDefinition(twoSum, "java")
	assert.Equal(t, feedback.KindFunctionDefinition, def.Kind)
	assert.Contains(t, def.Text, "Output only raw java code.")
	assert.Contains(t, def.Text, "Generate a function definition for: Two Sum")
}

func TestNumberLines(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "single line", code: "x = 1", want: "1: x = 1"},
		{name: "keeps blank lines", code: "a\n\nb", want: "1: a\n2: \n3: b"},
		{name: "empty", code: "", want: "1: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prompts.NumberLines(tt.code))
		})
	}
}
