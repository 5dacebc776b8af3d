package cluster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coresick/lifeline/internal/model"
)

var t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func asset(id string, at time.Time) model.MediaAsset {
	return model.MediaAsset{ID: id, TakenAt: at}
}

func geoAsset(id string, at time.Time, lat, lon float64) model.MediaAsset {
	a := asset(id, at)
	a.Location = &model.Coordinate{Lat: lat, Lon: lon}
	a.ExifComplete = true
	return a
}

func testConfig() Configuration {
	return Configuration{
		TemporalThresholdMin:   60,
		SpatialThresholdMeters: 500,
		BurstThresholdSec:      30,
		MinBurstSize:           3,
		MaxBurstSize:           50,
	}
}

func TestCluster_EmptyInput(t *testing.T) {
	assert.Empty(t, Cluster(nil, testConfig()))
}

func TestCluster_SimpleBurst(t *testing.T) {
	// 5 photos 10s apart at the same GPS point form one burst of size 5.
	var assets []model.MediaAsset
	for i := 0; i < 5; i++ {
		assets = append(assets, geoAsset("a"+string(rune('1'+i)), t0.Add(time.Duration(i)*10*time.Second), 48.85, 2.35))
	}

	clusters := Cluster(assets, testConfig())

	require.Len(t, clusters, 1)
	assert.True(t, clusters[0].IsBurst)
	assert.Len(t, clusters[0].Assets, 5)
	assert.Equal(t, t0, clusters[0].Start)
	assert.Equal(t, t0.Add(40*time.Second), clusters[0].End)
	require.NotNil(t, clusters[0].Center)
	assert.InDelta(t, 48.85, clusters[0].Center.Lat, 1e-9)
}

func TestCluster_GapSplitsBurstRuns(t *testing.T) {
	// Gaps 5s,5s,5s,40s,5s,5s with a 30s threshold: the 40s gap closes the
	// first run (size 4) and the trailing run (size 3) is its own burst.
	offsets := []int{0, 5, 10, 15, 55, 60, 65}
	var assets []model.MediaAsset
	for i, off := range offsets {
		assets = append(assets, asset("a"+string(rune('1'+i)), t0.Add(time.Duration(off)*time.Second)))
	}

	clusters := Cluster(assets, testConfig())

	require.Len(t, clusters, 2)
	assert.True(t, clusters[0].IsBurst)
	assert.Len(t, clusters[0].Assets, 4)
	assert.True(t, clusters[1].IsBurst)
	assert.Len(t, clusters[1].Assets, 3)
}

func TestCluster_MaxBurstSizeClosesRun(t *testing.T) {
	cfg := testConfig()
	cfg.MinBurstSize = 2
	cfg.MaxBurstSize = 3

	var assets []model.MediaAsset
	for i := 0; i < 5; i++ {
		assets = append(assets, asset("a"+string(rune('1'+i)), t0.Add(time.Duration(i)*5*time.Second)))
	}

	clusters := Cluster(assets, cfg)

	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].Assets, 3)
	assert.Len(t, clusters[1].Assets, 2)
	assert.True(t, clusters[0].IsBurst)
	assert.True(t, clusters[1].IsBurst)
}

func TestCluster_ShortRunFallsBackToProximity(t *testing.T) {
	// Two rapid captures are below the min burst size, so they become a
	// proximity collection instead.
	assets := []model.MediaAsset{
		asset("a1", t0),
		asset("a2", t0.Add(5*time.Second)),
	}

	clusters := Cluster(assets, testConfig())

	require.Len(t, clusters, 1)
	assert.False(t, clusters[0].IsBurst)
	assert.Len(t, clusters[0].Assets, 2)
}

func TestCluster_TemporalThresholdSplitsClusters(t *testing.T) {
	// Elapsed time is anchored at the cluster's first asset: 0 and 40min fit
	// a 60min window together, but 80min does not.
	assets := []model.MediaAsset{
		asset("a1", t0),
		asset("a2", t0.Add(40*time.Minute)),
		asset("a3", t0.Add(80*time.Minute)),
	}

	clusters := Cluster(assets, testConfig())

	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].Assets, 2)
	assert.Len(t, clusters[1].Assets, 1)
}

func TestCluster_SpatialThresholdSplitsClusters(t *testing.T) {
	// Third capture is ~1.5km away: outside the 500m reach of the first two.
	assets := []model.MediaAsset{
		geoAsset("a1", t0, 48.8500, 2.35),
		geoAsset("a2", t0.Add(2*time.Minute), 48.8501, 2.35),
		geoAsset("a3", t0.Add(4*time.Minute), 48.8640, 2.35),
	}

	clusters := Cluster(assets, testConfig())

	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].Assets, 2)
	assert.Len(t, clusters[1].Assets, 1)
}

func TestCluster_AssetsWithoutGPSOnlyConstrainedTemporally(t *testing.T) {
	assets := []model.MediaAsset{
		geoAsset("a1", t0, 48.85, 2.35),
		asset("a2", t0.Add(5*time.Minute)),
		geoAsset("a3", t0.Add(10*time.Minute), 48.8501, 2.35),
	}

	clusters := Cluster(assets, testConfig())

	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Assets, 3)
}

func TestCluster_PartitionInvariant(t *testing.T) {
	// No asset is lost or duplicated, whatever the cluster shapes.
	var assets []model.MediaAsset
	offsets := []int{0, 5, 10, 15, 300, 4000, 4005, 4010, 4015, 9000}
	for i, off := range offsets {
		a := asset("p"+string(rune('a'+i)), t0.Add(time.Duration(off)*time.Second))
		if i%2 == 0 {
			a.Location = &model.Coordinate{Lat: 48.85, Lon: 2.35}
		}
		assets = append(assets, a)
	}

	clusters := Cluster(assets, testConfig())

	seen := map[string]int{}
	for _, c := range clusters {
		for _, a := range c.Assets {
			seen[a.ID]++
		}
	}
	require.Len(t, seen, len(assets))
	for id, n := range seen {
		assert.Equal(t, 1, n, "asset %s owned by %d clusters", id, n)
	}
}

func TestCluster_OrderedByStartTime(t *testing.T) {
	// Input is deliberately unsorted.
	assets := []model.MediaAsset{
		asset("late", t0.Add(3*time.Hour)),
		asset("b1", t0),
		asset("b2", t0.Add(5*time.Second)),
		asset("b3", t0.Add(10*time.Second)),
	}

	clusters := Cluster(assets, testConfig())

	require.Len(t, clusters, 2)
	assert.True(t, clusters[0].Start.Before(clusters[1].Start))
	assert.True(t, clusters[0].IsBurst)
}

func TestDefaultConfiguration_PetTighterThanBusiness(t *testing.T) {
	pet := DefaultConfiguration(CategoryPet)
	biz := DefaultConfiguration(CategoryBusiness)

	assert.Less(t, pet.TemporalThresholdMin, biz.TemporalThresholdMin)
	assert.Less(t, pet.SpatialThresholdMeters, biz.SpatialThresholdMeters)
}

func TestDefaultConfiguration_UnknownCategoryFallsBack(t *testing.T) {
	assert.Equal(t, DefaultConfiguration(CategoryDefault), DefaultConfiguration("garden-gnomes"))
}

func TestConfiguration_Validate(t *testing.T) {
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	cfg.MinBurstSize = 1
	err := cfg.Validate()
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "min_burst_size", cerr.Field)
}
