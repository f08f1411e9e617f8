package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, "zone a", Normalize("  Zone A  "))
	require.Equal(t, "p5008", Normalize("P5008"))
	require.Equal(t, "", Normalize("   "))
}

func TestResolveZoneStripsProjectCodePrefix(t *testing.T) {
	require.Equal(t, "zone a", ResolveZone("P5008-Zone A", "P5008"))
	require.Equal(t, "zone a", ResolveZone("P5008 Zone A", "P5008"))
	require.Equal(t, "zone a", ResolveZone("P5008 - Zone A", "P5008"))
	require.Equal(t, "zone a", ResolveZone("p5008-zone a", "P5008"))
}

func TestResolveZoneWithoutPrefix(t *testing.T) {
	// 编码不在开头时原样返回规范化结果
	require.Equal(t, "zone a", ResolveZone("Zone A", "P5008"))
	// 编码相似但后面不是分隔符，按普通文本处理
	require.Equal(t, "p50081", ResolveZone("P50081", "P5008"))
	// 没有项目编码时只做规范化
	require.Equal(t, "zone b", ResolveZone("Zone B", ""))
}

func TestResolveZoneEmpty(t *testing.T) {
	require.Equal(t, "", ResolveZone("", "P5008"))
	require.Equal(t, "", ResolveZone("   ", "P5008"))
	// 区域恰好等于项目编码，视为未指定区域
	require.Equal(t, "", ResolveZone("P5008", "P5008"))
}
