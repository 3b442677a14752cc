package relate

import (
	"strings"

	"github.com/fathomline/stgeo/pkg/geom"
)

// dimF is the Matrix cell value for the alphabet character 'F' (empty
// intersection); 0/1/2 are the OGC intersection dimensions.
const dimF int8 = -1

// Matrix is the DE-9IM: rows are Interior(A)/Boundary(A)/Exterior(A),
// columns are Interior(B)/Boundary(B)/Exterior(B) of the pair of
// geometries last passed to Relate.
type Matrix [3][3]int8

func emptyMatrix() Matrix {
	var m Matrix
	for i := range m {
		for j := range m[i] {
			m[i][j] = dimF
		}
	}
	return m
}

// union combines two matrices computed over disjoint parts of the same
// pair of operands by taking the cell-wise maximum dimension, which is
// correct exactly when the parts do not overlap each other (true for the
// multi-geometry members this package flattens operands into, per
// spec.md §3.2 invariant (a)).
func (m Matrix) union(o Matrix) Matrix {
	var out Matrix
	for i := range m {
		for j := range m[i] {
			out[i][j] = maxDim(m[i][j], o[i][j])
		}
	}
	return out
}

func maxDim(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}

func cellChar(d int8) byte {
	if d == dimF {
		return 'F'
	}
	return byte('0') + byte(d)
}

// String renders the matrix as the standard 9-character DE-9IM string,
// row-major: IAIB IABB IAEB BAIB BABB BAEB EAIB EABB EAEB.
func (m Matrix) String() string {
	var b strings.Builder
	for i := range m {
		for j := range m[i] {
			b.WriteByte(cellChar(m[i][j]))
		}
	}
	return b.String()
}

// At returns the cell for (row, col) where each is 0=interior,
// 1=boundary, 2=exterior.
func (m Matrix) At(row, col int) int8 { return m[row][col] }

// Matches reports whether m satisfies a DE-9IM pattern string: each
// pattern character is one of 'F','0','1','2' (exact), 'T' (any
// non-empty, i.e. not F), or '*' (anything).
func (m Matrix) Matches(pattern string) (bool, error) {
	if len(pattern) != 9 {
		return false, &geom.InvalidArgument{Op: "ST_Relate", Reason: "pattern must be exactly 9 characters"}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p := pattern[i*3+j]
			cell := m[i][j]
			switch p {
			case '*':
				continue
			case 'T':
				if cell == dimF {
					return false, nil
				}
			case 'F':
				if cell != dimF {
					return false, nil
				}
			case '0', '1', '2':
				if cell != int8(p-'0') {
					return false, nil
				}
			default:
				return false, &geom.InvalidArgument{Op: "ST_Relate", Reason: "pattern character must be one of F,0,1,2,T,*"}
			}
		}
	}
	return true, nil
}
