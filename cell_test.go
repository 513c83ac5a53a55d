package loom

import "testing"

func TestBorrowCellSharedBorrow(t *testing.T) {
	var c borrowCell

	if out := c.tryShared(); out != borrowOK {
		t.Fatalf("first shared borrow: got %v", out)
	}
	if out := c.tryShared(); out != borrowOK {
		t.Fatalf("second shared borrow: got %v", out)
	}
	if out := c.tryShared(); out != borrowOK {
		t.Fatalf("third shared borrow: got %v", out)
	}
}

func TestBorrowCellExclusiveBorrow(t *testing.T) {
	var c borrowCell

	if out := c.tryExclusive(); out != borrowOK {
		t.Fatalf("first exclusive borrow: got %v", out)
	}
	c.releaseExclusive()

	if out := c.tryExclusive(); out != borrowOK {
		t.Fatalf("second exclusive borrow: got %v", out)
	}
	c.releaseExclusive()
}

func TestBorrowCellMixed(t *testing.T) {
	var c borrowCell

	if out := c.tryExclusive(); out != borrowOK {
		t.Fatalf("exclusive borrow: got %v", out)
	}

	if out := c.tryShared(); out != borrowExclusiveHeld {
		t.Fatalf("shared borrow while exclusively held: got %v, want borrowExclusiveHeld", out)
	}

	if out := c.tryExclusive(); out != borrowExclusiveHeld {
		t.Fatalf("nested exclusive borrow: got %v, want borrowExclusiveHeld", out)
	}
}

func TestBorrowCellSharedThenExclusiveFails(t *testing.T) {
	var c borrowCell

	if out := c.tryShared(); out != borrowOK {
		t.Fatalf("shared borrow: got %v", out)
	}

	if out := c.tryExclusive(); out != borrowExclusiveHeld {
		t.Fatalf("exclusive borrow while shared held: got %v, want borrowExclusiveHeld", out)
	}

	c.releaseShared()

	if out := c.tryExclusive(); out != borrowOK {
		t.Fatalf("exclusive borrow after shared release: got %v", out)
	}
}

func TestBorrowCellReleaseRoundTrip(t *testing.T) {
	var c borrowCell

	c.tryShared()
	c.tryShared()
	c.releaseShared()
	c.releaseShared()

	if c.locked() {
		t.Fatalf("cell should be unlocked after matching releases")
	}
}
