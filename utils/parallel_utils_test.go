package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test bucket sizes
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		for n := 64; n < 2000; n++ {
			histo := getHisto(n, 32)
			assert.LessOrEqual(t, len(histo), 2) // Maximum imbalance of 1
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Buckets tile the index range without gaps
		pm := NewPartitionMap(7, 100)
		prev := 0
		for bn := 0; bn < pm.ParallelDegree; bn++ {
			kMin, kMax := pm.GetBucketRange(bn)
			assert.Equal(t, prev, kMin)
			prev = kMax
		}
		assert.Equal(t, 100, prev)
	}
	{ // A single bucket holds everything
		pm := NewPartitionMap(1, 5)
		kMin, kMax := pm.GetBucketRange(0)
		assert.Equal(t, 0, kMin)
		assert.Equal(t, 5, kMax)
	}
}
