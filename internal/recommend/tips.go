package recommend

// TipSelector picks k health tips for a condition. condition is empty when
// nothing matched.
type TipSelector interface {
	Select(condition string, pool []string, k int, src Source) []string
}

// UniformTips samples uniformly without replacement and ignores the condition.
type UniformTips struct{}

// Select draws k distinct tips from pool.
func (UniformTips) Select(_ string, pool []string, k int, src Source) []string {
	return sample(src, pool, k)
}
