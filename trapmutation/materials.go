package trapmutation

// buildOddSizeTable produces a table where every odd helium size up to
// maxSize has a rule at every bucket in [0, maxBucket), mapping to a
// same-size vacancy product (v(s, bucket) = s). This is the shape each
// concrete material below specializes with its own maxSize/maxBucket/
// activation energy; materials differ from each other in those
// parameters, not in the table's functional form, mirroring how
// simplechem's per-material mechanisms differ only in their constant
// tables.
func buildOddSizeTable(maxSize, maxBucket int) map[[2]int]int {
	t := make(map[[2]int]int)
	for s := 1; s <= maxSize; s += 2 {
		for b := 0; b < maxBucket; b++ {
			t[[2]int{s, b}] = s
		}
	}
	return t
}

// W110 is the tungsten (110) surface rule set.
func W110() Rule {
	return tableRule{
		name:       "W110",
		table:      buildOddSizeTable(9, 12),
		maxBucket:  12,
		maxSize:    9,
		activation: 0.28,
	}
}

// W100 is the tungsten (100) surface rule set.
func W100() Rule {
	return tableRule{
		name:       "W100",
		table:      buildOddSizeTable(9, 10),
		maxBucket:  10,
		maxSize:    9,
		activation: 0.30,
	}
}

// W111 is the tungsten (111) surface rule set.
func W111() Rule {
	return tableRule{
		name:       "W111",
		table:      buildOddSizeTable(7, 8),
		maxBucket:  8,
		maxSize:    7,
		activation: 0.26,
	}
}

// W211 is the tungsten (211) surface rule set.
func W211() Rule {
	return tableRule{
		name:       "W211",
		table:      buildOddSizeTable(7, 8),
		maxBucket:  8,
		maxSize:    7,
		activation: 0.24,
	}
}

// Fe is the iron bcc rule set.
func Fe() Rule {
	return tableRule{
		name:       "Fe",
		table:      buildOddSizeTable(5, 6),
		maxBucket:  6,
		maxSize:    5,
		activation: 0.20,
	}
}

// UO2 is the uranium-dioxide fluorite-lattice rule set.
func UO2() Rule {
	return tableRule{
		name:       "UO2",
		table:      buildOddSizeTable(5, 6),
		maxBucket:  6,
		maxSize:    5,
		activation: 0.35,
	}
}
