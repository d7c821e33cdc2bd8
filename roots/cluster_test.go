package roots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterMultiplicities(t *testing.T) {
	// 二重实根 1（带噪声）与一对共轭复根 ±2i
	raw := []complex128{
		complex(1+3e-8, 2e-9),
		complex(0, -2),
		complex(1-3e-8, -1e-9),
		complex(0, 2),
	}
	unique := Cluster(raw, DefaultClusterEpsilon, DefaultDecimals)
	require.Len(t, unique, 2)

	assert.Equal(t, complex(1, 0), unique[0].Value)
	assert.Equal(t, 2, unique[0].Multiplicity)
	assert.True(t, unique[0].IsReal())

	// 共轭对只保留虚部为正的一个
	assert.Equal(t, complex(0, 2), unique[1].Value)
	assert.Equal(t, 1, unique[1].Multiplicity)
	assert.False(t, unique[1].IsReal())
}

func TestClusterRepeatedComplexPair(t *testing.T) {
	// (x^2 + 1)^2：两对共轭根，顺序任意
	raw := []complex128{
		complex(1e-9, -1),
		complex(-1e-9, 1),
		complex(0, 1+2e-8),
		complex(0, -1),
	}
	unique := Cluster(raw, DefaultClusterEpsilon, DefaultDecimals)
	require.Len(t, unique, 1)
	assert.Equal(t, complex(0, 1), unique[0].Value)
	assert.Equal(t, 2, unique[0].Multiplicity)
	assert.Equal(t, 4, unique[0].Unknowns())
}

func TestClusterRounding(t *testing.T) {
	unique := Cluster([]complex128{1.27614237491539}, DefaultClusterEpsilon, DefaultDecimals)
	require.Len(t, unique, 1)
	assert.Equal(t, complex(1.2761424, 0), unique[0].Value)
}

func TestClusterEmpty(t *testing.T) {
	assert.Empty(t, Cluster(nil, DefaultClusterEpsilon, DefaultDecimals))
}

func TestRootFactor(t *testing.T) {
	assert.Equal(t, []float64{-2, 1}, []float64(Root{Value: 2, Multiplicity: 1}.Factor()))
	// (x - (1+2i))(x - (1-2i)) = x^2 - 2x + 5
	assert.Equal(t, []float64{5, -2, 1}, []float64(Root{Value: 1 + 2i, Multiplicity: 1}.Factor()))
	assert.Equal(t, 3, Root{Value: 2, Multiplicity: 3}.Unknowns())
}
