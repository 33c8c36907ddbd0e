package main

import (
	"encoding/binary"
	"fmt"
	"github.com/p7r0x7/hortex"
	"github.com/p7r0x7/hortex/analysis"
	"math/big"
)

// Copyright © 2021 Matthew R Bonnette. Licensed under a BSD-3-Clause license.

const ints = uint32(2e4)

// meanBias is the average distance of each digest bit's frequency from one half, as a
// percentage of the expected count.
func meanBias(hashes map[uint32]*big.Int, ln int) float64 {
	tally := make([]int32, ln)
	for i := range hashes {
		for i2 := ln - 1; i2 >= 0; i2-- {
			if hashes[i].Bit(i2) == 1 {
				tally[i2]++
			}
		}
	}
	var total int32
	half := int32(len(hashes) >> 1)
	for i := range tally {
		tally[i] -= half
		if tally[i] < 0 {
			total += tally[i] * -1
		} else {
			total += tally[i]
		}
	}
	return (float64(total) / float64(ln)) / float64(half) * 100
}

// monobit hashes counting integers and keystream messages under the reference and baseline
// variants and prints how far each digest bit strays from even odds.
func monobit() {
	const testLength = hortex.Size * 8
	for _, v := range []hortex.Variant{hortex.Reference, hortex.Baseline} {
		integers, random := map[uint32]*big.Int{}, map[uint32]*big.Int{}
		src, msg, iBytes := analysis.NewStream("statz"), make([]byte, 64), make([]byte, 4)
		for i := ints; i > 0; i-- {
			binary.BigEndian.PutUint32(iBytes, i)
			sum := hortex.Sum(iBytes, v)
			integers[i] = big.NewInt(0).SetBytes(sum[:])

			for j := 0; j < len(msg); j += 4 {
				binary.LittleEndian.PutUint32(msg[j:], src.Uint32())
			}
			sum = hortex.Sum(msg, v)
			random[i] = big.NewInt(0).SetBytes(sum[:])
		}
		fmt.Println(v)
		fmt.Printf("Integer input Monobit test:  %7.3f%%\n", meanBias(integers, testLength))
		fmt.Printf("Random input Monobit test:   %7.3f%%\n", meanBias(random, testLength))
	}
}
