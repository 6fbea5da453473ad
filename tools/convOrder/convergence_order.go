package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies := readCSV(csvFile)
	for _, cs := range studies {
		fmt.Printf("Title = %s\n", cs.title)
		for i := range cs.refinement {
			order := math.NaN()
			if i != 0 {
				// uniform refinement halves h per cycle
				order = math.Log2(cs.l2Error[i-1] / cs.l2Error[i])
			}
			fmt.Printf("%d, %v, %5.2f\n", cs.refinement[i], cs.l2Error[i], order)
		}
	}
}

type ConvergenceStudy struct {
	title      string
	refinement []int
	l2Error    []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
	}
}

func (cs *ConvergenceStudy) Add(refinement int, l2Error float64) {
	cs.refinement = append(cs.refinement, refinement)
	cs.l2Error = append(cs.l2Error, l2Error)
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy) {
	var (
		records [][]string
		err     error
		f       *os.File
		ok      bool
		cs      *ConvergenceStudy
		l2      float64
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		title, reftxt := rec[0], rec[1]
		ref, _ := strconv.Atoi(reftxt)
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title)
			studies[title] = cs
		}
		_, _ = fmt.Sscanf(rec[2], "%f", &l2)
		cs.Add(ref, l2)
	}
	return
}
