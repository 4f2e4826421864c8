package thet

import (
	"fmt"

	"github.com/carbocation/pfx"
)

// IndexBlock is a contiguous [begin, end) block over a linear index space,
// used to hand a worker its share of equations or segments. Begin is
// inclusive, end is not.
type IndexBlock struct {
	begIndex int
	endIndex int
}

// NewIndexBlock returns the block spanning [begIndex, endIndex). The block
// must contain at least one element.
func NewIndexBlock(begIndex, endIndex int) (IndexBlock, error) {
	if begIndex < 0 {
		return IndexBlock{}, pfx.Err(&ValidationError{msg: "the begin index of a block must be non-negative"})
	}
	if endIndex <= begIndex {
		return IndexBlock{}, pfx.Err(&ValidationError{msg: "a block must contain at least one element"})
	}
	return IndexBlock{begIndex: begIndex, endIndex: endIndex}, nil
}

// BegIndex returns the inclusive begin index.
func (b IndexBlock) BegIndex() int {
	return b.begIndex
}

// EndIndex returns the exclusive end index.
func (b IndexBlock) EndIndex() int {
	return b.endIndex
}

// NumElements returns the number of indices the block spans.
func (b IndexBlock) NumElements() int {
	return b.endIndex - b.begIndex
}

func (b IndexBlock) String() string {
	return fmt.Sprintf("[%d, %d)", b.begIndex, b.endIndex)
}

// partitionIndexBlocks splits [0, numElements) into at most numBlocks
// near-equal contiguous blocks. Earlier blocks absorb the remainder, so block
// sizes differ by at most one.
func partitionIndexBlocks(numElements, numBlocks int) []IndexBlock {
	if numElements <= 0 || numBlocks <= 0 {
		return nil
	}
	if numBlocks > numElements {
		numBlocks = numElements
	}

	blocks := make([]IndexBlock, 0, numBlocks)
	size := numElements / numBlocks
	remainder := numElements % numBlocks
	beg := 0
	for i := 0; i < numBlocks; i++ {
		end := beg + size
		if i < remainder {
			end++
		}
		blocks = append(blocks, IndexBlock{begIndex: beg, endIndex: end})
		beg = end
	}
	return blocks
}
