// This file is part of Scanout.
//
// Scanout is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Scanout is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Scanout.  If not, see <https://www.gnu.org/licenses/>.

package recorder_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/gpu/recorder"
	"github.com/jetsetilly/scanout/shader"
	"github.com/jetsetilly/scanout/test"
)

func TestBuffers(t *testing.T) {
	rec := recorder.NewRecorder(true)

	b := rec.NewVertexBuffer(8, gpu.Layout{Stride: 4})
	rec.WriteBuffer(b, []byte{1, 2}, []byte{3, 4, 5})
	test.ExpectEquality(t, string(rec.BufferData(b)), string([]byte{1, 2, 3, 4, 5, 0, 0, 0}))

	ops := rec.OpsOfKind(recorder.WriteBuffer)
	test.DemandEquality(t, len(ops), 1)
	test.ExpectEquality(t, ops[0].Args[0], 5)
	test.ExpectEquality(t, string(ops[0].Data), string([]byte{1, 2, 3, 4, 5}))

	// overflowing the buffer is a programming error
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	rec.WriteBuffer(b, make([]byte, 9))
}

func TestDataTexture(t *testing.T) {
	rec := recorder.NewRecorder(true)

	tex := rec.NewDataTexture(gpu.SourceDataUnit, 4, 4, 2)
	rec.WriteDataTexture(tex, 0, 1, 4, 2, []byte{
		1, 1, 2, 2, 3, 3, 4, 4,
		5, 5, 6, 6, 7, 7, 8, 8,
	})

	data := rec.TextureData(tex)
	test.DemandEquality(t, len(data), 32)
	test.ExpectEquality(t, data[7], byte(0))
	test.ExpectEquality(t, data[8], byte(1))
	test.ExpectEquality(t, data[23], byte(8))
	test.ExpectEquality(t, data[24], byte(0))

	// partial row
	rec.WriteDataTexture(tex, 1, 3, 2, 1, []byte{9, 9, 10, 10})
	data = rec.TextureData(tex)
	test.ExpectEquality(t, data[25], byte(0))
	test.ExpectEquality(t, data[26], byte(9))
	test.ExpectEquality(t, data[29], byte(10))
	test.ExpectEquality(t, data[30], byte(0))

	ops := rec.OpsOfKind(recorder.WriteDataTexture)
	test.DemandEquality(t, len(ops), 2)
	test.ExpectEquality(t, fmt.Sprint(ops[1].Args), "[1 3 2 1]")

	// writing outside of the texture is a programming error
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	rec.WriteDataTexture(tex, 3, 0, 2, 1, []byte{1, 1, 1, 1})
}

func TestDrawRequiresProgram(t *testing.T) {
	rec := recorder.NewRecorder(true)
	b := rec.NewVertexBuffer(64, gpu.Layout{Stride: 16})

	func() {
		defer func() {
			test.ExpectInequality(t, recover(), nil)
		}()
		rec.DrawInstanced(b, 1)
	}()

	p, err := shader.New(rec, "vertex", "fragment", "a", "b")
	test.DemandSuccess(t, err)
	p.SetUniformFloat("scale", 1, 2)
	p.Bind()
	rec.DrawInstanced(b, 4)

	draws := rec.OpsOfKind(recorder.DrawInstanced)
	test.DemandEquality(t, len(draws), 1)
	test.ExpectEquality(t, draws[0].Program, p.Handle())
	test.ExpectEquality(t, draws[0].Args[0], 4)

	src, ok := rec.Program(p.Handle())
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, src.Bindings[1].Name, "b")

	uniforms := rec.OpsOfKind(recorder.ApplyUniform)
	test.DemandEquality(t, len(uniforms), 1)
	test.ExpectEquality(t, uniforms[0].Name, "scale")
}

func TestFailCompile(t *testing.T) {
	rec := recorder.NewRecorder(false)
	rec.FailCompile = true
	_, err := shader.New(rec, "vertex", "fragment")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrLinkage))
	test.ExpectEquality(t, rec.Count(recorder.CompileProgram), 1)

	// not retaining
	test.ExpectEquality(t, len(rec.Ops()), 0)
}

func TestFences(t *testing.T) {
	rec := recorder.NewRecorder(true)
	rec.BusyFences = 1

	f := rec.NewFence()
	test.ExpectFailure(t, rec.WaitFence(f, false))
	test.ExpectSuccess(t, rec.WaitFence(f, false))

	rec.BusyFences = 1
	test.ExpectSuccess(t, rec.WaitFence(f, true))

	rec.DeleteFence(f)
	test.ExpectEquality(t, rec.Live(), 0)
}

func TestTargets(t *testing.T) {
	rec := recorder.NewRecorder(true)
	tgt := rec.NewTarget(gpu.AccumulationUnit, 640, 480, true)
	w, h, ok := rec.TargetSize(tgt)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, w, 640)
	test.ExpectEquality(t, h, 480)

	rec.BindTarget(tgt)
	rec.SetAccumulate(true)
	rec.Fill(0, 0, 0)
	fills := rec.OpsOfKind(recorder.Fill)
	test.DemandEquality(t, len(fills), 1)
	test.ExpectEquality(t, fills[0].Args[0], 1)

	rec.DeleteTarget(tgt)
	_, _, ok = rec.TargetSize(tgt)
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, recorder.DrawTarget.String(), "DrawTarget")
	test.ExpectEquality(t, recorder.Kind(-1).String(), "unknown")
}
