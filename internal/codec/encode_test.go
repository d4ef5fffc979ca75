package codec

import (
	"bytes"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/cl1/internal/ir"
	"github.com/roach88/cl1/internal/testutil"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "Init 5 2", Encode(ir.NewInit(5, 2)))
	assert.Equal(t, "Add 1 c 3 4", Encode(ir.NewAdd(1, true, 3, 4)))
	assert.Equal(t, "Pixel Cache Raw 16744448", Encode(ir.NewPixelCache(false, 255, false, 128, false, 0)))
	assert.Equal(t, "Math CC 1 2", Encode(ir.NewMathCC(1, 2)))
	assert.Equal(t, ":loop", Encode(ir.NewPointer(":loop")))
}

func TestEncodeStatement(t *testing.T) {
	line, err := EncodeStatement(ir.Label{Name: "loop"})
	require.NoError(t, err)
	assert.Equal(t, ":loop", line)

	line, err = EncodeStatement(ir.Jump{Target: ir.LabelTarget("loop")})
	require.NoError(t, err)
	assert.Equal(t, "Cell Jump loop", line)
}

func TestRoundTripFactoryInstructions(t *testing.T) {
	for _, inst := range testutil.AllShapes() {
		t.Run(inst.String(), func(t *testing.T) {
			back, err := Decode(Encode(inst), nil)
			require.NoError(t, err)
			require.NotNil(t, back)
			assert.Equal(t, inst.Opcode(), back.Opcode())
			assert.Equal(t, inst.Args(), back.Args())
		})
	}
}

func TestRoundTripStrict(t *testing.T) {
	dec := NewDecoder()
	for _, inst := range testutil.AllShapes() {
		back, err := dec.Decode(Encode(inst))
		require.NoError(t, err, inst.String())
		assert.True(t, inst.Equal(*back), inst.String())
	}
}

func TestRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("decode(encode(x)) == x", prop.ForAll(
		func(op ir.Op) bool {
			inst := ir.Build(op)
			back, err := NewDecoder().Decode(Encode(inst))
			return err == nil && back != nil && inst.Equal(*back)
		},
		testutil.GenOp(),
	))

	properties.Property("decode(encode(x)) raises to x", prop.ForAll(
		func(op ir.Op) bool {
			stmt, err := NewDecoder().DecodeStatement(Encode(ir.Lower(op)))
			return err == nil && stmt == ir.Statement(op)
		},
		testutil.GenOp(),
	))

	properties.TestingRun(t)
}

func TestConcurrentDecode(t *testing.T) {
	defer goleak.VerifyNone(t)

	insts := testutil.AllShapes()
	dec := NewDecoder()

	var wg sync.WaitGroup
	errs := make(chan error, len(insts)*8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, inst := range insts {
				back, err := dec.Decode(Encode(inst))
				if err != nil {
					errs <- err
					continue
				}
				if !inst.Equal(*back) {
					errs <- assert.AnError
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestEncodeProgramGolden(t *testing.T) {
	prog := []ir.Instruction{
		ir.NewPointer(":loop"),
		ir.NewInit(5, 2),
		ir.NewAdd(2, false, 1, 2),
		ir.NewIf("<", 2, false, 10, "loop"),
		ir.NewPixelCache(false, 255, false, 128, false, 0),
		ir.NewPixel(true, 2, false, 3.5),
		ir.NewDeviceScreenUpdate(),
		ir.NewMath("/", 2, false, 2, 3),
		ir.NewCellReturn(),
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeProgram(&buf, prog))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "program", buf.Bytes())
}
