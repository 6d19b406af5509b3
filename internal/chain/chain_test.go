package chain

import "testing"

func TestGrowAdvancesHeightAndExposesPending(t *testing.T) {
	c := New("tendermock-test")

	if h := c.GetHeight(); h.Block != 1 {
		t.Fatalf("expected genesis height 1, got %d", h.Block)
	}

	c.Grow()
	if h := c.GetHeight(); h.Block != 2 {
		t.Fatalf("expected height 2 after grow, got %d", h.Block)
	}

	if _, ok := c.GetBlock(3); !ok {
		t.Fatal("expected pending block at height 3 to be present")
	}
	if h := c.GetHeight(); h.Block != 2 {
		t.Fatalf("GetBlock(3) must not advance height, still got %d", h.Block)
	}

	c.Grow()
	if h := c.GetHeight(); h.Block != 3 {
		t.Fatalf("expected height 3 after second grow, got %d", h.Block)
	}
}

func TestGetBlockDispatch(t *testing.T) {
	c := New("tendermock-test")
	c.Grow()
	c.Grow()

	last, ok := c.GetBlock(0)
	if !ok || last.Header.Height != 3 {
		t.Fatalf("GetBlock(0) should return the latest validated block, got %+v, %v", last, ok)
	}
	first, ok := c.GetBlock(1)
	if !ok || first.Header.Height != 1 {
		t.Fatalf("GetBlock(1) should return genesis, got %+v, %v", first, ok)
	}
	if _, ok := c.GetBlock(5); ok {
		t.Fatal("expected out-of-range height to miss")
	}
}

func TestSuccessiveBlocksLinkByHash(t *testing.T) {
	c := New("tendermock-test")
	c.Grow()

	genesis, _ := c.GetBlock(1)
	second, _ := c.GetBlock(2)
	if !second.Header.LastBlockID.Hash.Equal(genesis.Header.Hash()) {
		t.Fatal("expected height 2's LastBlockID to reference genesis's header hash")
	}
}
